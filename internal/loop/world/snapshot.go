package world

import "github.com/tomz197/invaders/internal/object"

// Box is a plain rectangle copied out of an entity.
type Box struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
	W float64 `msgpack:"w"`
	H float64 `msgpack:"h"`
}

// EnemyView is an enemy as a renderer sees it. Rotation already includes
// the formation wobble and the enemy's own offset, in degrees.
type EnemyView struct {
	Box      `msgpack:",inline"`
	Rotation float64 `msgpack:"rot"`
}

// ExplosionView is an explosion with its animation state.
type ExplosionView struct {
	Box     `msgpack:",inline"`
	Scale   float64 `msgpack:"scale"`
	Opacity float64 `msgpack:"opacity"`
}

// StarView is a background star.
type StarView struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Color string  `msgpack:"color"`
}

// Snapshot is a read-only copy of the world after a tick.
// Player and projectile X values are horizontal centers; enemy and
// explosion boxes are top-left anchored.
type Snapshot struct {
	Width            float64         `msgpack:"width"`
	Height           float64         `msgpack:"height"`
	State            GameState       `msgpack:"state"`
	Paused           bool            `msgpack:"paused"`
	Score            int             `msgpack:"score"`
	Lives            int             `msgpack:"lives"`
	Wave             int             `msgpack:"wave"`
	RotationAngle    float64         `msgpack:"rotation"`
	Player           Box             `msgpack:"player"`
	Projectiles      []Box           `msgpack:"projectiles"`
	AlienProjectiles []Box           `msgpack:"alienProjectiles"`
	Enemies          []EnemyView     `msgpack:"enemies"`
	Explosions       []ExplosionView `msgpack:"explosions"`
	Stars            []StarView      `msgpack:"stars"`
}

// Snapshot copies the current entity set for rendering.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Width:         w.cfg.Screen.Width,
		Height:        w.cfg.Screen.Height,
		State:         w.state,
		Paused:        w.paused,
		Score:         w.score,
		Lives:         w.lives,
		Wave:          w.wave,
		RotationAngle: w.formation.Rotation,
		Player: Box{
			X: w.player.X,
			Y: w.player.Y,
			W: w.player.Width,
			H: w.player.Height,
		},
		Projectiles:      projectileBoxes(w.projectiles),
		AlienProjectiles: projectileBoxes(w.alienProjectiles),
		Enemies:          make([]EnemyView, len(w.enemies)),
		Explosions:       make([]ExplosionView, len(w.explosions)),
		Stars:            make([]StarView, len(w.stars)),
	}

	for i, e := range w.enemies {
		s.Enemies[i] = EnemyView{
			Box:      Box{X: e.X, Y: e.Y, W: e.Width, H: e.Height},
			Rotation: w.formation.Rotation + e.RotationOffset,
		}
	}
	for i, x := range w.explosions {
		s.Explosions[i] = ExplosionView{
			Box:     Box{X: x.X, Y: x.Y, W: x.Width, H: x.Height},
			Scale:   x.Scale,
			Opacity: x.Opacity,
		}
	}
	for i, st := range w.stars {
		s.Stars[i] = StarView{X: st.X, Y: st.Y, Color: st.Color}
	}
	return s
}

func projectileBoxes(shots []*object.Projectile) []Box {
	boxes := make([]Box, len(shots))
	for i, p := range shots {
		boxes[i] = Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
	}
	return boxes
}
