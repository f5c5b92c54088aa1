// Package client is the terminal frontend: it renders one simulation to an
// ANSI terminal and feeds it keyboard and mouse input.
package client

import (
	"bufio"
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/JDLundy87/stardust-drifter/internal/draw"
	"github.com/JDLundy87/stardust-drifter/internal/input"
	"github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/loop/sim"
	"github.com/JDLundy87/stardust-drifter/internal/object"
)

// Client runs one game session on a terminal.
type Client struct {
	sim          *sim.Simulation
	tuning       config.Tuning
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	shutdown     <-chan struct{}
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Tuning       config.Tuning    // Zero value means config.Default()
	Logger       *log.Logger      // Nil discards
	Clock        sim.TimeProvider // Nil uses the system clock
	Shutdown     <-chan struct{}  // Closed when the host is going away
}

// NewClient creates a client with its own simulation over the fixed logical
// view of config.ViewWidth x config.ViewHeight.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tuning := opts.Tuning
	if tuning == (config.Tuning{}) {
		tuning = config.Default()
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	simOpts := []sim.Option{
		sim.WithLogger(logger.With("user", opts.Username)),
		sim.WithScoreSink(state),
		sim.WithGameOverSink(state),
	}
	if opts.Clock != nil {
		simOpts = append(simOpts, sim.WithClock(opts.Clock))
	}
	game, err := sim.New(tuning, object.Screen{Width: config.ViewWidth, Height: config.ViewHeight}, simOpts...)
	if err != nil {
		return nil, err
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		sim:          game,
		tuning:       tuning,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		styles:       newStyles(w),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		shutdown:     opts.Shutdown,
		log:          logger,
	}, nil
}

// Run starts the client loop. Blocks until the player quits, the input closes,
// the session idles out or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processShutdown()
		c.updateScreen()

		if !c.state.shuttingDown {
			c.updateAim()
			c.sim.Tick()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	c.log.Debug("session over", "user", c.username, "best", c.state.Best)
	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards it to the simulation.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	if in.Any || len(in.Mouse) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}
	if c.state.shuttingDown {
		return
	}

	if in.Restart {
		c.restart()
		return
	}

	for _, ev := range in.Mouse {
		x, y := c.canvas.TerminalToLogical(ev.Col, ev.Row)
		switch ev.Action {
		case input.MousePress:
			c.sim.PointerDown(x, y)
		case input.MouseDrag:
			c.sim.PointerMove(x, y)
		case input.MouseRelease:
			c.sim.PointerUp(x, y)
		}
	}

	if !in.Any {
		return
	}
	if c.sim.State() != sim.StatePlaying {
		// Starting or skipping a banner must not also aim or launch.
		c.sim.KeyDown()
		input.ResetKeyInput(c.inputStream)
		c.state.Input = input.Input{}
		return
	}
	if in.Space || in.Enter {
		c.launch()
	}
}

// updateAim turns held keys into aim changes while the player rests.
func (c *Client) updateAim() {
	if c.sim.State() != sim.StatePlaying || c.sim.View().Player.Moving {
		return
	}
	in := c.state.Input
	if in.Left {
		c.state.AimAngle -= config.AimTurnRate
	}
	if in.Right {
		c.state.AimAngle += config.AimTurnRate
	}
	if in.Up {
		c.state.AimPower = math.Min(c.state.AimPower+config.AimPowerStep, 1)
	}
	if in.Down {
		c.state.AimPower = math.Max(c.state.AimPower-config.AimPowerStep, config.AimPowerStep)
	}
}

// launch fires the player along the keyboard aim. The aim power is turned
// into the drag length that produces it.
func (c *Client) launch() {
	limits := c.sim.LaunchLimits()
	dist := c.state.AimPower * limits.MaxPower * limits.Divisor * limits.Scale
	dx := math.Cos(c.state.AimAngle) * dist
	dy := math.Sin(c.state.AimAngle) * dist
	c.sim.Launch(dx, dy)
}

// restart resets the game to the title screen.
func (c *Client) restart() {
	input.ResetKeyInput(c.inputStream)
	c.state.ResetAim()
	c.sim.Reset()
}

// processShutdown enters the shutdown screen once the host signals it and
// ends the session when the countdown runs out.
func (c *Client) processShutdown() {
	if !c.state.shuttingDown {
		select {
		case <-c.shutdown:
			c.state.shuttingDown = true
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		default:
		}
		return
	}
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area. The logical view is fixed, so the simulation
// itself is not resized.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
