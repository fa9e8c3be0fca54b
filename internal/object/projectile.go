package object

import "github.com/tomz197/invaders/internal/physics"

// Projectile geometry and speeds.
const (
	ProjectileWidth  = 1 // floor(2 * 0.85)
	ProjectileHeight = 3 // floor(4 * 0.85)

	// Nominal speeds; projectiles travel at half of these (see speedFactor).
	PlayerProjectileSpeed = 450.0
	AlienProjectileSpeed  = 300.0

	speedFactor = 0.5
)

// Projectile is a shot travelling straight up (player) or down (alien).
// X is the horizontal center used for spawning and drawing, Y the top edge.
type Projectile struct {
	X, Y          float64
	Width, Height float64
	Speed         float64 // Nominal speed in pixels per second
	Dir           float64 // -1 travels up, +1 travels down
	destroyed     bool
}

// NewProjectile creates a player shot leaving the nose of the ship.
func NewProjectile(p *Player) *Projectile {
	return &Projectile{
		X:      p.X,
		Y:      p.Y - p.Height/2,
		Width:  ProjectileWidth,
		Height: ProjectileHeight,
		Speed:  PlayerProjectileSpeed,
		Dir:    -1,
	}
}

// NewAlienProjectile creates a shot dropping from the bottom center of an enemy.
func NewAlienProjectile(e *Enemy) *Projectile {
	return &Projectile{
		X:      e.X + e.Width/2,
		Y:      e.Y + e.Height,
		Width:  ProjectileWidth,
		Height: ProjectileHeight,
		Speed:  AlienProjectileSpeed,
		Dir:    1,
	}
}

// MarkDestroyed marks the projectile for removal.
func (p *Projectile) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}

// Update moves the projectile and reports whether it left the playfield.
// Upward shots leave once fully above the top edge, downward shots once
// their top passes the bottom edge.
func (p *Projectile) Update(dt float64, screen Screen) (remove bool) {
	p.Y += p.Dir * p.Speed * speedFactor * dt

	if p.Dir < 0 {
		return p.Y+p.Height < 0
	}
	return p.Y > screen.Height
}

// Bounds returns the box tested against enemies.
// The box starts at X rather than centering on it, matching how hits were
// always resolved.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}
