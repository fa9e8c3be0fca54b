package object

// Explosion animation rates, per second.
const (
	ExplosionScaleSpeed   = 0.65625
	ExplosionOpacitySpeed = 1.3125
)

// Explosion is the fading burst left where an enemy died.
type Explosion struct {
	X, Y          float64 // Top-left corner of the enemy that died
	Width, Height float64
	Scale         float64
	Opacity       float64
}

// NewExplosion copies the enemy's box at the moment of death.
func NewExplosion(e *Enemy) *Explosion {
	return &Explosion{
		X:       e.X,
		Y:       e.Y,
		Width:   e.Width,
		Height:  e.Height,
		Scale:   1,
		Opacity: 1,
	}
}

// Update grows and fades the explosion. Returns true once fully faded.
func (x *Explosion) Update(dt float64) (remove bool) {
	x.Scale += ExplosionScaleSpeed * dt
	x.Opacity -= ExplosionOpacitySpeed * dt
	return x.Opacity <= 0
}
