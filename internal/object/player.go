package object

import "github.com/tomz197/invaders/internal/physics"

// Player ship geometry and motion.
const (
	PlayerSize    = 17    // floor(20 * 0.85)
	PlayerYOffset = 10    // Gap between the ship and the bottom edge
	PlayerSpeed   = 100.0 // Pixels per second
)

// Player is the ship at the bottom of the playfield.
// X is the horizontal center; the ship has no velocity, input moves it directly.
type Player struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// NewPlayer creates the ship centered at the bottom of the screen.
func NewPlayer(screen Screen) *Player {
	p := &Player{
		Width:  PlayerSize,
		Height: PlayerSize,
		Speed:  PlayerSpeed,
	}
	p.Reset(screen)
	return p
}

// Reset moves the ship back to its start position.
func (p *Player) Reset(screen Screen) {
	p.X = screen.Width / 2
	p.Y = screen.Height - p.Height - PlayerYOffset
}

// Update moves the ship while a direction key is held.
// A step that would push any part of the ship past a wall is not taken.
func (p *Player) Update(dt float64, in Input, screen Screen) {
	step := p.Speed * dt
	half := p.Width / 2

	if in.Left && p.X-step-half >= 0 {
		p.X -= step
	}
	if in.Right && p.X+step+half <= screen.Width {
		p.X += step
	}
}

// Bounds returns the ship's collision box, centered on its position.
func (p *Player) Bounds() physics.Rect {
	return physics.CenteredRect(p.X, p.Y, p.Width, p.Height)
}
