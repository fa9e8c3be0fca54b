// Package world runs the invaders simulation: one synchronous Tick advances
// every entity, resolves hits and drives the title/playing/game-over machine.
// Nothing here draws; renderers read a Snapshot after each tick.
package world

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// ErrInvalidFormation is returned by New when the wave grid or playfield is empty.
var ErrInvalidFormation = errors.New("invalid formation")

// Config holds the tunables of one game.
type Config struct {
	Screen               object.Screen
	Layout               object.WaveLayout
	InitialLives         int
	ScorePerEnemy        int
	MaxPlayerProjectiles int
	MaxAlienProjectiles  int
	AlienFireChance      float64 // Per tick
	EnemyBaseSpeed       float64 // Pixels per second
	EnemyMoveDown        float64
	RespawnDelayMs       float64
	StarCount            int
}

// DefaultConfig returns the classic arcade settings.
func DefaultConfig() Config {
	return Config{
		Screen:               object.Screen{Width: config.FieldWidth, Height: config.FieldHeight},
		Layout:               object.DefaultWaveLayout,
		InitialLives:         config.InitialLives,
		ScorePerEnemy:        config.ScorePerEnemy,
		MaxPlayerProjectiles: config.MaxPlayerProjectile,
		MaxAlienProjectiles:  config.MaxAlienProjectile,
		AlienFireChance:      config.AlienFireChance,
		EnemyBaseSpeed:       config.EnemyBaseSpeed,
		EnemyMoveDown:        config.EnemyMoveDown,
		RespawnDelayMs:       config.WaveRespawnDelayMs,
		StarCount:            object.StarCount,
	}
}

// Option configures a World.
type Option func(*World)

// WithRand sets the random source (fire chance, shooter choice, stars, wobble).
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		w.rng = rng
	}
}

// WithLogger sets the logger used for rejected ticks and state changes.
func WithLogger(logger *log.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// Stats counts processed and rejected ticks.
type Stats struct {
	Ticks         int
	RejectedTicks int
}

// World owns every entity of one game session.
type World struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger

	player           *object.Player
	projectiles      []*object.Projectile
	alienProjectiles []*object.Projectile
	enemies          []*object.Enemy
	explosions       []*object.Explosion
	stars            []object.Star

	formation Formation
	score     int
	lives     int
	wave      int
	state     GameState
	paused    bool

	prevInput     input.Input
	stats         Stats
	deltaReported bool
}

// New creates a world on the title screen with a wave already in place.
func New(cfg Config, opts ...Option) (*World, error) {
	if cfg.Layout.Rows <= 0 || cfg.Layout.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrInvalidFormation, cfg.Layout.Rows, cfg.Layout.Cols)
	}
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v playfield", ErrInvalidFormation, cfg.Screen.Width, cfg.Screen.Height)
	}

	w := &World{
		cfg:   cfg,
		lives: cfg.InitialLives,
		state: StateTitle,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}

	w.player = object.NewPlayer(cfg.Screen)
	w.stars = object.NewStars(cfg.StarCount, cfg.Screen, w.rng)
	w.formation = newFormation(cfg.Layout.Total(), cfg.EnemyBaseSpeed)
	w.spawnWave()
	return w, nil
}

// Tick advances the simulation by deltaMs milliseconds using this frame's keys.
// Negative or non-finite deltas are rejected; while paused only the pause key
// is honoured. Reports whether the simulation advanced.
func (w *World) Tick(deltaMs float64, in input.Input) bool {
	if deltaMs < 0 || math.IsNaN(deltaMs) || math.IsInf(deltaMs, 0) {
		w.stats.RejectedTicks++
		if !w.deltaReported {
			w.deltaReported = true
			w.logger.Warn("rejecting tick", "delta", deltaMs)
		}
		return false
	}

	pressed := in.Edges(w.prevInput)
	w.prevInput = in

	if pressed.Pause {
		w.paused = !w.paused
		w.logger.Debug("pause toggled", "paused", w.paused)
	}
	if w.paused {
		return false
	}

	dt := deltaMs / 1000
	for i := range w.stars {
		w.stars[i].Update(dt, w.cfg.Screen, w.rng)
	}

	w.handleInput(pressed)
	if w.state == StatePlaying {
		w.updatePlaying(deltaMs, pressed)
	}

	w.stats.Ticks++
	return true
}

// updatePlaying runs one gameplay step. The order matters: explosions are aged
// before collisions, so an explosion spawned by a hit first grows next tick.
func (w *World) updatePlaying(deltaMs float64, in input.Input) {
	dt := deltaMs / 1000
	screen := w.cfg.Screen

	w.player.Update(dt, in, screen)
	w.projectiles = updateProjectiles(w.projectiles, dt, screen)

	if w.formation.advance(w.enemies, dt, screen, w.cfg.EnemyMoveDown) {
		w.setState(StateGameOver, "enemy reached the floor")
	}
	w.alienProjectiles = updateProjectiles(w.alienProjectiles, dt, screen)
	w.formation.rotate(dt)
	w.explosions = updateExplosions(w.explosions, dt)

	w.resolveCollisions()
	w.updateRespawn(deltaMs)

	if w.rng.Float64() < w.cfg.AlienFireChance {
		w.alienShoot()
	}

	if w.lives <= 0 {
		w.setState(StateGameOver, "out of lives")
	}
}

// updateRespawn schedules a new wave once the field is cleared and spawns it
// when the countdown runs out.
func (w *World) updateRespawn(deltaMs float64) {
	if w.formation.respawnPending() {
		if w.formation.countDown(deltaMs) {
			w.spawnWave()
		}
		return
	}
	if len(w.enemies) == 0 {
		w.formation.scheduleRespawn(w.cfg.RespawnDelayMs)
		w.logger.Debug("wave cleared", "wave", w.wave, "score", w.score)
	}
}

// spawnWave replaces the enemies with a fresh grid at the start position.
func (w *World) spawnWave() {
	w.enemies = object.NewWave(w.cfg.Screen, w.cfg.Layout, w.rng)
	w.formation.reset()
	w.wave++
	w.logger.Debug("wave spawned", "wave", w.wave, "enemies", len(w.enemies))
}

// fire launches a player shot unless the on-screen cap is reached.
func (w *World) fire() {
	if len(w.projectiles) >= w.cfg.MaxPlayerProjectiles {
		return
	}
	w.projectiles = append(w.projectiles, object.NewProjectile(w.player))
}

// Stats returns tick counters.
func (w *World) Stats() Stats {
	return w.stats
}

// State returns the current game state.
func (w *World) State() GameState {
	return w.state
}

// Paused reports whether the simulation is frozen.
func (w *World) Paused() bool {
	return w.paused
}

// Score returns the current score.
func (w *World) Score() int {
	return w.score
}

// Lives returns the remaining lives.
func (w *World) Lives() int {
	return w.lives
}

// EnemyCount returns the number of enemies alive.
func (w *World) EnemyCount() int {
	return len(w.enemies)
}
