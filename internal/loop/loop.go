// Package loop runs one player's game in a terminal: it reads keys, steps the
// world at a fixed frame rate and draws every frame.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/world"
)

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Rand         *rand.Rand // Seeds the world; a time-seeded source if nil

	// Zero values fall back to the defaults in the config package.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
	ShutdownDisplay      time.Duration
}

// Client owns a world and the terminal it is drawn on.
type Client struct {
	world        *world.World
	canvas       *draw.Canvas
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger

	warnAfter       time.Duration
	disconnectAfter time.Duration
	shutdownDisplay time.Duration

	running       bool
	lastInput     time.Time
	inactive      bool
	shuttingDown  bool
	shutdownTimer float64 // Seconds left on the shutdown screen
	borderDirty   bool
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	worldOpts := []world.Option{world.WithLogger(logger)}
	if opts.Rand != nil {
		worldOpts = append(worldOpts, world.WithRand(opts.Rand))
	}
	wld, err := world.New(world.DefaultConfig(), worldOpts...)
	if err != nil {
		return nil, err
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		world:           wld,
		canvas:          canvas,
		writer:          w,
		inputStream:     input.StartStream(r),
		termSizeFunc:    termSizeFunc,
		logger:          logger,
		warnAfter:       durationOr(opts.InactivityWarn, config.InactivityWarnUser),
		disconnectAfter: durationOr(opts.InactivityDisconnect, config.InactivityDisconnectUser),
		shutdownDisplay: durationOr(opts.ShutdownDisplay, config.ShutdownDisplaySeconds*time.Second),
		running:         true,
		lastInput:       time.Now(),
		borderDirty:     true,
	}, nil
}

// Run creates a client and plays until the player quits, the input closes,
// the player goes idle or ctx is cancelled and the shutdown notice has been shown.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// Run starts the frame loop. Blocks until the client stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(ctx, delta)
		c.updateScreen()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	stats := c.world.Stats()
	c.logger.Debug("client stopped", "ticks", stats.Ticks, "rejected", stats.RejectedTicks, "score", c.world.Score())

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads keys, tracks idleness and steps the world.
func (c *Client) processInput(ctx context.Context, delta time.Duration) {
	in := input.ReadInput(c.inputStream)

	if c.inputStream.Closed() || in.Quit {
		c.running = false
		return
	}

	if !c.shuttingDown && ctx.Err() != nil {
		c.shuttingDown = true
		c.shutdownTimer = c.shutdownDisplay.Seconds()
		c.borderDirty = true
	}
	if c.shuttingDown {
		c.shutdownTimer -= delta.Seconds()
		if c.shutdownTimer <= 0 {
			c.running = false
		}
		return
	}

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.inactive = false
	} else if idle := time.Since(c.lastInput); idle > c.disconnectAfter {
		c.logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
		c.running = false
		return
	} else if idle > c.warnAfter {
		c.inactive = true
	}

	before := c.world.State()
	c.world.Tick(float64(delta)/float64(time.Millisecond), in)
	if c.world.State() != before {
		// Keys held on the old screen do not carry over.
		c.inputStream.Reset()
	}
}

// updateScreen follows terminal resizes, clamped to the max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		// Clear residue of the old border and offset area.
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
		c.borderDirty = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
