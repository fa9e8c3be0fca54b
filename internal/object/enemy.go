package object

import (
	"math/rand"

	"github.com/tomz197/invaders/internal/physics"
)

// Enemy geometry.
const (
	EnemySize         = 17 // floor(20 * 0.85)
	EnemyPadding      = 7  // floor(10 * 0.85 * 0.85)
	EnemyStartY       = 25 // floor(30 * 0.85)
	MaxRotationOffset = 20 // Degrees of per-enemy tilt jitter
)

// Enemy is one invader. X, Y is the top-left corner.
type Enemy struct {
	X, Y           float64
	Width, Height  float64
	RotationOffset float64 // Degrees, fixed at creation, drawing only
	destroyed      bool
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Bounds returns the unrotated collision box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// WaveLayout describes the enemy grid.
type WaveLayout struct {
	Rows, Cols int
	Size       float64
	Padding    float64
	StartY     float64
}

// DefaultWaveLayout is the classic 5x11 grid.
var DefaultWaveLayout = WaveLayout{
	Rows:    5,
	Cols:    11,
	Size:    EnemySize,
	Padding: EnemyPadding,
	StartY:  EnemyStartY,
}

// Total returns the number of enemies in a full wave.
func (l WaveLayout) Total() int {
	return l.Rows * l.Cols
}

// StartX returns the left edge of the grid, horizontally centered on screen.
func (l WaveLayout) StartX(screen Screen) float64 {
	gridWidth := float64(l.Cols)*(l.Size+l.Padding) - l.Padding
	return (screen.Width - gridWidth) / 2
}

// NewWave lays out a full grid of enemies row by row.
// Positions depend only on the layout and screen; rng only picks rotation offsets.
func NewWave(screen Screen, layout WaveLayout, rng *rand.Rand) []*Enemy {
	startX := layout.StartX(screen)
	step := layout.Size + layout.Padding

	enemies := make([]*Enemy, 0, layout.Total())
	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Cols; col++ {
			enemies = append(enemies, &Enemy{
				X:              startX + float64(col)*step,
				Y:              layout.StartY + float64(row)*step,
				Width:          layout.Size,
				Height:         layout.Size,
				RotationOffset: rng.Float64()*2*MaxRotationOffset - MaxRotationOffset,
			})
		}
	}
	return enemies
}
