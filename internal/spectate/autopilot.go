// Package spectate runs a self-playing game and streams it to browsers.
package spectate

import (
	"math"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/world"
)

// Autopilot tuning.
const (
	aimTolerance = 2.0  // Pixels either side of the target counted as lined up
	dodgeRange   = 60.0 // How far above the ship an alien shot triggers a dodge
)

// Autopilot produces keys for a demo game from the last snapshot.
// It lines up under the closest enemy, fires once lined up and steps aside
// from alien shots about to land. Fire is pressed every other frame so each
// press registers as a new edge.
type Autopilot struct {
	fire bool
}

// Next returns the keys to hold for the coming tick.
func (a *Autopilot) Next(snap *world.Snapshot) input.Input {
	var in input.Input
	if snap.Paused {
		return in
	}

	a.fire = !a.fire
	if snap.State != world.StatePlaying {
		in.Fire = a.fire
		return in
	}

	p := snap.Player
	if dir := dodge(snap); dir != 0 {
		in.Left = dir < 0
		in.Right = dir > 0
		return in
	}

	target, ok := closestColumn(snap.Enemies, p.X)
	if !ok {
		return in
	}
	switch {
	case target < p.X-aimTolerance:
		in.Left = true
	case target > p.X+aimTolerance:
		in.Right = true
	default:
		in.Fire = a.fire
	}
	return in
}

// dodge returns -1 or +1 to step away from an incoming shot, 0 if none threatens.
func dodge(snap *world.Snapshot) int {
	p := snap.Player
	top := p.Y - p.H/2
	for _, s := range snap.AlienProjectiles {
		if s.Y+s.H < top-dodgeRange || s.Y > p.Y+p.H/2 {
			continue
		}
		if math.Abs(s.X-p.X) > p.W {
			continue
		}
		// Step away, unless already against that wall.
		if s.X >= p.X && p.X-p.W > 0 {
			return -1
		}
		if p.X+p.W < snap.Width {
			return 1
		}
		return -1
	}
	return 0
}

// closestColumn returns the center x of the enemy nearest to x horizontally.
func closestColumn(enemies []world.EnemyView, x float64) (float64, bool) {
	best, found := 0.0, false
	for _, e := range enemies {
		cx := e.X + e.W/2
		if !found || math.Abs(cx-x) < math.Abs(best-x) {
			best, found = cx, true
		}
	}
	return best, found
}
