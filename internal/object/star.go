package object

import "math/rand"

// StarCount is the number of background stars.
const StarCount = 200

// starDrift converts seconds to star travel: stars move speed px every 150ms.
const starDrift = 1000.0 / 150.0

// StarColors are the possible star tints.
var StarColors = []string{"white", "yellow", "blue", "red", "green"}

// Star is a background dot falling at its own speed.
type Star struct {
	X, Y  float64
	Speed float64
	Color string
}

// NewStars scatters count stars across the screen.
func NewStars(count int, screen Screen, rng *rand.Rand) []Star {
	stars := make([]Star, count)
	for i := range stars {
		stars[i] = Star{
			X:     rng.Float64() * screen.Width,
			Y:     rng.Float64() * screen.Height,
			Speed: rng.Float64()*2.3 + 3,
			Color: StarColors[rng.Intn(len(StarColors))],
		}
	}
	return stars
}

// Update moves the star down and wraps it to the top at a new column
// once it falls past the bottom edge.
func (s *Star) Update(dt float64, screen Screen, rng *rand.Rand) {
	s.Y += s.Speed * dt * starDrift
	if s.Y > screen.Height {
		s.Y = 0
		s.X = rng.Float64() * screen.Width
	}
}
