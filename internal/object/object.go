// Package object defines the entities of the playfield and their per-tick motion.
//
// Coordinates follow two conventions that collision code relies on:
// the player and projectiles are positioned by their horizontal center,
// enemies and explosions by their top-left corner.
package object

import (
	"github.com/tomz197/invaders/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Screen is the logical playfield size in pixels.
type Screen struct {
	Width  float64
	Height float64
}

// Destructible is implemented by entities that collision resolution can remove.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Alive reports whether obj has not been marked destroyed.
// Handy as a filter predicate when compacting entity slices.
func Alive[T Destructible](obj T, _ int) bool {
	return !obj.IsDestroyed()
}
