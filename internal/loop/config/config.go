// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - the logical resolution game objects live in.
// Actual rendering scales to fit terminal size.
const (
	FieldWidth  = 320
	FieldHeight = 240
)

// Scoring
const (
	ScorePerEnemy = 5
)

// Player
const (
	InitialLives        = 3
	MaxPlayerProjectile = 2 // Player shots on screen at once
)

// Formation
const (
	EnemyBaseSpeed      = 11.0  // Pixels per second with a full wave
	EnemySpeedRamp      = 1.25  // Extra px/s per destroyed enemy
	LastEnemySpeedRamp  = 5.0   // Ramp used once a single enemy remains
	LastEnemySpeedScale = 0.832 // Damping applied to the last-enemy ramp
	EnemyMoveDown       = 10.0  // Pixels the formation drops on each wall bounce
	WaveRespawnDelayMs  = 1000.0
)

// Enemy rotation wobble (drawing only)
const (
	RotationSpeed = 20.0 // Degrees per second
	RotationLimit = 20.0 // Degrees either side of upright
)

// Alien fire
const (
	AlienFireChance    = 0.01 // Chance per tick, not per second
	MaxAlienProjectile = 3
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before disconnect
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Maximum terminal area used for the canvas; larger terminals get a centered border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)
