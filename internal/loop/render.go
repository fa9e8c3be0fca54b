package loop

import (
	"math"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop/world"
)

// minExplosionOpacity hides explosions once they fade below a visible level.
// The terminal has no alpha, so a fading ring is shown until it gets faint.
const minExplosionOpacity = 0.25

// drawEntities draws the playfield from a snapshot.
func drawEntities(canvas *draw.Canvas, snap *world.Snapshot) {
	for _, s := range snap.Stars {
		canvas.SetFloat(s.X, s.Y)
	}

	if snap.State == world.StateTitle {
		return
	}

	for _, e := range snap.Enemies {
		canvas.DrawPolygon(enemyPolygon(e), true)
	}
	for _, x := range snap.Explosions {
		if x.Opacity < minExplosionOpacity {
			continue
		}
		canvas.DrawPolygon(explosionPolygon(x), false)
	}
	for _, p := range snap.Projectiles {
		canvas.FillRect(p.X-p.W/2, p.Y, p.W, p.H)
	}
	for _, p := range snap.AlienProjectiles {
		canvas.FillRect(p.X-p.W/2, p.Y, p.W, p.H)
	}
	canvas.DrawPolygon(shipPolygon(snap.Player), true)
}

// shipPolygon is the player's cannon: a triangle inside its centered box.
func shipPolygon(b world.Box) []draw.Point {
	return []draw.Point{
		{X: b.X, Y: b.Y - b.H/2},
		{X: b.X + b.W/2, Y: b.Y + b.H/2},
		{X: b.X - b.W/2, Y: b.Y + b.H/2},
	}
}

// enemyPolygon is the enemy's square rotated about its center.
func enemyPolygon(e world.EnemyView) []draw.Point {
	return rotatedSquare(e.X+e.W/2, e.Y+e.H/2, e.W/2, e.H/2, e.Rotation)
}

// explosionPolygon is the destroyed enemy's square grown by the explosion scale.
func explosionPolygon(x world.ExplosionView) []draw.Point {
	return rotatedSquare(x.X+x.W/2, x.Y+x.H/2, x.W/2*x.Scale, x.H/2*x.Scale, 0)
}

func rotatedSquare(cx, cy, hw, hh, degrees float64) []draw.Point {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	points := make([]draw.Point, len(corners))
	for i, c := range corners {
		points[i] = draw.Point{
			X: cx + c[0]*cos - c[1]*sin,
			Y: cy + c[0]*sin + c[1]*cos,
		}
	}
	return points
}
