package world

import (
	"math"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Formation is the shared movement state of the enemy block: sweep direction,
// the wobble angle added to every enemy when drawn, and the pending wave respawn.
type Formation struct {
	Direction float64 // +1 sweeps right, -1 sweeps left
	Rotation  float64 // Degrees, within ±RotationLimit

	rotationDir float64
	total       int
	baseSpeed   float64

	pending   bool
	remaining float64 // Milliseconds until the pending wave spawns
}

func newFormation(total int, baseSpeed float64) Formation {
	return Formation{
		Direction:   1,
		rotationDir: 1,
		total:       total,
		baseSpeed:   baseSpeed,
	}
}

// FormationSpeed returns the sweep speed in px/s for a wave of total enemies
// with remaining still alive. The last survivor uses a steeper ramp.
func FormationSpeed(base float64, total, remaining int) float64 {
	destroyed := float64(total - remaining)
	if remaining == 1 {
		return math.Floor(base + config.LastEnemySpeedRamp*destroyed*config.LastEnemySpeedScale)
	}
	return math.Floor(base + config.EnemySpeedRamp*destroyed)
}

// advance sweeps every enemy sideways. If any enemy touches a wall the whole
// block turns around and drops by moveDown. Enemies are clamped one pixel
// inside the walls. Returns true if an enemy reached the bottom edge.
func (f *Formation) advance(enemies []*object.Enemy, dt float64, screen object.Screen, moveDown float64) (breach bool) {
	speed := FormationSpeed(f.baseSpeed, f.total, len(enemies))
	bounce := false

	for _, e := range enemies {
		e.X += f.Direction * speed * dt

		if e.X <= 0 || e.X+e.Width >= screen.Width {
			bounce = true
		}
		if e.X+e.Width >= screen.Width {
			e.X = screen.Width - e.Width - 1
		}
		if e.X <= 0 {
			e.X = 1
		}

		if e.Y+e.Height >= screen.Height {
			breach = true
		}
	}

	if bounce {
		f.Direction = -f.Direction
		for _, e := range enemies {
			e.Y += moveDown
		}
	}
	return breach
}

// rotate swings the wobble angle back and forth between the limits.
func (f *Formation) rotate(dt float64) {
	f.Rotation += f.rotationDir * config.RotationSpeed * dt

	if f.Rotation >= config.RotationLimit {
		f.Rotation = config.RotationLimit
		f.rotationDir = -1
	} else if f.Rotation <= -config.RotationLimit {
		f.Rotation = -config.RotationLimit
		f.rotationDir = 1
	}
}

// scheduleRespawn starts the respawn countdown unless one is already running.
func (f *Formation) scheduleRespawn(delayMs float64) {
	if f.pending {
		return
	}
	f.pending = true
	f.remaining = delayMs
}

func (f *Formation) respawnPending() bool {
	return f.pending
}

// countDown spends deltaMs of the respawn delay. Returns true exactly once,
// when the delay has fully elapsed.
func (f *Formation) countDown(deltaMs float64) (due bool) {
	if !f.pending {
		return false
	}
	f.remaining -= deltaMs
	if f.remaining > 0 {
		return false
	}
	f.pending = false
	f.remaining = 0
	return true
}

// reset points the block right again and drops any pending respawn.
func (f *Formation) reset() {
	f.Direction = 1
	f.pending = false
	f.remaining = 0
}
