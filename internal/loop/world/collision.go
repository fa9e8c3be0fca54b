package world

import (
	"github.com/samber/lo"
	"github.com/tomz197/invaders/internal/object"
)

// resolveCollisions applies this tick's hits in a fixed order:
// player shots on enemies, alien shots on the player, enemies touching the player.
func (w *World) resolveCollisions() {
	w.checkProjectileEnemyCollisions()
	w.checkAlienProjectilePlayerCollisions()
	w.checkEnemyPlayerCollisions()
}

// checkProjectileEnemyCollisions destroys the first enemy, in slice order,
// that each shot overlaps. A shot is spent on its first hit.
func (w *World) checkProjectileEnemyCollisions() {
	for _, p := range w.projectiles {
		shot := p.Bounds()
		for _, e := range w.enemies {
			if e.IsDestroyed() {
				continue
			}
			if shot.Overlaps(e.Bounds()) {
				w.explosions = append(w.explosions, object.NewExplosion(e))
				e.MarkDestroyed()
				p.MarkDestroyed()
				w.score += w.cfg.ScorePerEnemy
				break
			}
		}
	}

	w.enemies = lo.Filter(w.enemies, object.Alive[*object.Enemy])
	w.projectiles = lo.Filter(w.projectiles, object.Alive[*object.Projectile])
}

// checkAlienProjectilePlayerCollisions costs one life per shot whose tip is
// inside the ship. There is no grace period between hits.
func (w *World) checkAlienProjectilePlayerCollisions() {
	ship := w.player.Bounds()
	for _, p := range w.alienProjectiles {
		if !ship.ContainsPoint(p.X, p.Y) {
			continue
		}
		p.MarkDestroyed()
		if w.lives > 0 {
			w.lives--
		}
		w.logger.Debug("player hit", "lives", w.lives)
	}

	w.alienProjectiles = lo.Filter(w.alienProjectiles, object.Alive[*object.Projectile])
}

// checkEnemyPlayerCollisions ends the game when any enemy touches the ship.
func (w *World) checkEnemyPlayerCollisions() {
	ship := w.player.Bounds()
	for _, e := range w.enemies {
		if e.Bounds().Overlaps(ship) {
			w.setState(StateGameOver, "enemy touched the player")
			return
		}
	}
}

// updateProjectiles moves shots and drops those that left the playfield.
func updateProjectiles(shots []*object.Projectile, dt float64, screen object.Screen) []*object.Projectile {
	return lo.Filter(shots, func(p *object.Projectile, _ int) bool {
		return !p.Update(dt, screen)
	})
}

// updateExplosions ages explosions and drops the faded ones.
func updateExplosions(explosions []*object.Explosion, dt float64) []*object.Explosion {
	return lo.Filter(explosions, func(x *object.Explosion, _ int) bool {
		return !x.Update(dt)
	})
}
