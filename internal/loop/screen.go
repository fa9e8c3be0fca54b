package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/loop/world"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.canvas.Clear()

	snap := c.world.Snapshot()
	drawEntities(c.canvas, &snap)

	switch {
	case c.shuttingDown:
		c.drawShutdownScreen()
	case c.inactive:
		c.drawInactivityScreen()
	case snap.Paused:
		c.drawPausedScreen()
	default:
		switch snap.State {
		case world.StateTitle:
			c.drawTitleScreen()
		case world.StatePlaying:
			c.drawPlayingHUD(snap.Score, snap.Lives, snap.Wave)
		case world.StateGameOver:
			c.drawGameOverScreen(snap.Score, snap.Wave)
		}
	}

	if err := c.canvas.Render(c.writer); err != nil {
		return err
	}
	if c.borderDirty {
		c.borderDirty = false
		return c.canvas.RenderBorder(c.writer)
	}
	return nil
}

// center returns the middle row of the canvas.
func (c *Client) center() int {
	return c.canvas.TerminalHeight()/2 + 1
}

// drawTitleScreen draws the title screen.
func (c *Client) drawTitleScreen() {
	titleArt := []string{
		` ___ _  ___   ___   ___  ___ ___  ___ `,
		`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
		` | || .' |\ V / _ \| |) | _||   /\__ \`,
		`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
	}
	row := c.center() - len(titleArt) - 1
	if c.canvas.TerminalWidth() < len(titleArt[0]) {
		c.canvas.TextCentered(row+len(titleArt)-1, "I N V A D E R S")
	} else {
		for i, line := range titleArt {
			c.canvas.TextCentered(row+i, line)
		}
	}

	c.canvas.TextCentered(c.center()+1, "Press SPACE to start")
	c.canvas.TextCentered(c.center()+3, "A/D or arrows move, SPACE fires, P pauses, R restarts, Q quits")
}

// drawPlayingHUD draws score, lives and wave along the top and bottom rows.
func (c *Client) drawPlayingHUD(score, lives, wave int) {
	c.canvas.Text(2, 1, fmt.Sprintf("Score: %d", score))

	livesText := fmt.Sprintf("Lives: %d", lives)
	c.canvas.Text(c.canvas.TerminalWidth()-len(livesText), 1, livesText)

	c.canvas.Text(2, c.canvas.TerminalHeight(), fmt.Sprintf("Wave %d", wave))
}

// drawPausedScreen draws the pause notice over the frozen playfield.
func (c *Client) drawPausedScreen() {
	c.canvas.TextCentered(c.center()-1, "P A U S E D")
	c.canvas.TextCentered(c.center()+1, "Press P to resume")
}

// drawGameOverScreen draws the final score.
func (c *Client) drawGameOverScreen(score, wave int) {
	c.canvas.TextCentered(c.center()-2, "GAME OVER")
	c.canvas.TextCentered(c.center(), fmt.Sprintf("Score: %d  Wave: %d", score, wave))
	c.canvas.TextCentered(c.center()+2, "Press SPACE for the title screen or R to play again")
}

// drawInactivityScreen draws the inactivity warning.
func (c *Client) drawInactivityScreen() {
	left := int((c.disconnectAfter - time.Since(c.lastInput)).Seconds())
	c.canvas.TextCentered(c.center()-2, "INACTIVITY WARNING")
	c.canvas.TextCentered(c.center(), fmt.Sprintf("You will be disconnected in %d seconds.", max(left, 0)))
	c.canvas.TextCentered(c.center()+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen() {
	c.canvas.TextCentered(c.center()-3, "SERVER SHUTTING DOWN")
	c.canvas.TextCentered(c.center()-1, "The server is restarting for maintenance.")
	c.canvas.TextCentered(c.center(), "Please reconnect in a moment.")
	c.canvas.TextCentered(c.center()+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.shutdownTimer)+1))
	c.canvas.TextCentered(c.center()+4, "Press Q to disconnect now")
}
