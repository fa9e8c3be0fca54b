package world

import "github.com/tomz197/invaders/internal/input"

// GameState is the phase of a session.
type GameState int

const (
	StateTitle    GameState = iota // Title screen, waiting for fire
	StatePlaying                   // Active gameplay
	StateGameOver                  // Sticky until fire or restart
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// handleInput applies this tick's key presses to the state machine.
// Fire shoots while playing, starts a game from the title and returns to the
// title from game over. Restart starts a fresh game from anywhere.
func (w *World) handleInput(pressed input.Input) {
	if pressed.Restart {
		w.startGame()
		return
	}
	if !pressed.Fire {
		return
	}

	switch w.state {
	case StatePlaying:
		w.fire()
	case StateTitle:
		w.startGame()
	case StateGameOver:
		w.setState(StateTitle, "fire pressed")
	}
}

// startGame resets the session and enters play with a fresh wave.
func (w *World) startGame() {
	w.score = 0
	w.lives = w.cfg.InitialLives
	w.projectiles = nil
	w.alienProjectiles = nil
	w.explosions = nil
	w.player.Reset(w.cfg.Screen)
	w.wave = 0
	w.spawnWave()
	w.setState(StatePlaying, "game started")
}

// setState moves the machine to next. Game over stays set until fire or restart.
func (w *World) setState(next GameState, reason string) {
	if w.state == next {
		return
	}
	w.logger.Debug("state change", "from", w.state, "to", next, "reason", reason)
	w.state = next
}
