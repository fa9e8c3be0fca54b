package world

import (
	"github.com/samber/lo"
	"github.com/tomz197/invaders/internal/object"
)

// alienShoot drops a shot from a random front-row enemy if fewer than the
// maximum alien shots are on screen.
func (w *World) alienShoot() {
	if len(w.alienProjectiles) >= w.cfg.MaxAlienProjectiles {
		return
	}

	shooters := frontRow(w.enemies)
	if len(shooters) == 0 {
		return
	}
	shooter := shooters[w.rng.Intn(len(shooters))]
	w.alienProjectiles = append(w.alienProjectiles, object.NewAlienProjectile(shooter))
}

// frontRow returns the lowest enemy of every column, columns being enemies
// that share the same X. Columns keep the order they first appear in.
func frontRow(enemies []*object.Enemy) []*object.Enemy {
	columns := lo.Uniq(lo.Map(enemies, func(e *object.Enemy, _ int) float64 {
		return e.X
	}))

	return lo.Map(columns, func(x float64, _ int) *object.Enemy {
		column := lo.Filter(enemies, func(e *object.Enemy, _ int) bool {
			return e.X == x
		})
		return lo.MaxBy(column, func(a, b *object.Enemy) bool {
			return a.Y > b.Y
		})
	})
}
