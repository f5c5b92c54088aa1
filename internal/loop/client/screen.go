package client

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/JDLundy87/stardust-drifter/internal/draw"
	"github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/loop/sim"
)

const (
	cometTail     = 8.0  // Tail length in ticks of travel
	aimBaseLength = 40.0 // Aim line length at zero power, logical pixels at BaseHeight
	aimPowerRange = 120.0
	meterWidth    = 20
)

// styles are bound to the session's writer so SSH sessions get their own renderer.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	prompt   lipgloss.Style
	warn     lipgloss.Style
	meter    lipgloss.Style
	banner   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		subtitle: r.NewStyle().Italic(true).Foreground(lipgloss.Color("242")),
		label:    r.NewStyle().Foreground(lipgloss.Color("86")),
		value:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		prompt:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		warn:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		meter:    r.NewStyle().Foreground(lipgloss.Color("82")),
		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 4).
			Align(lipgloss.Center),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	frame := c.sim.View()

	// On state, inactivity or shutdown changes, do a full terminal clear
	// so text from the previous screen doesn't persist.
	if frame.State != c.state.prevState || c.state.isInactive != c.state.wasInactive ||
		c.state.shuttingDown != c.state.wasShutdown {
		draw.ClearScreen(c.chunkWriter)
		c.state.prevState = frame.State
		c.state.wasInactive = c.state.isInactive
		c.state.wasShutdown = c.state.shuttingDown
	}

	c.canvas.Clear()
	c.drawWorld(frame)
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI(frame)

	return c.chunkWriter.Flush()
}

// drawWorld rasterizes every entity onto the canvas.
func (c *Client) drawWorld(frame sim.Frame) {
	cv := c.canvas

	for _, s := range frame.Background {
		cv.SetFloat(s.X, s.Y)
	}

	for _, p := range frame.Planets {
		if p.Central || p.Variant%2 == 0 {
			cv.FillCircle(p.X, p.Y, p.Radius)
			continue
		}
		// Ringed variant
		cv.DrawCircle(p.X, p.Y, p.Radius)
		cv.FillCircle(p.X, p.Y, p.Radius*0.5)
	}

	for _, cm := range frame.Comets {
		cv.FillCircle(cm.X, cm.Y, cm.Radius)
		cv.DrawLine(
			draw.Point{X: cm.X, Y: cm.Y},
			draw.Point{X: cm.X - cm.VX*cometTail, Y: cm.Y - cm.VY*cometTail},
		)
	}

	for _, s := range frame.Pickups {
		cv.FillDiamond(s.X, s.Y, s.Radius)
	}

	p := frame.Player
	cv.FillCircle(p.X, p.Y, p.Radius)

	if frame.State != sim.StatePlaying || p.Moving {
		return
	}
	angle, power := c.state.AimAngle, c.state.AimPower
	if frame.Aim.Active {
		angle = math.Atan2(frame.Aim.FromY-frame.Aim.ToY, frame.Aim.FromX-frame.Aim.ToX)
		power = frame.Aim.PowerFraction
	}
	length := (aimBaseLength + power*aimPowerRange) * frame.Scale
	cv.DrawLine(
		draw.Point{X: p.X, Y: p.Y},
		draw.Point{X: p.X + math.Cos(angle)*length, Y: p.Y + math.Sin(angle)*length},
	)
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(frame sim.Frame) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch frame.State {
	case sim.StateStart:
		c.drawStartScreen(centerX, centerY)
	case sim.StatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, frame)
	case sim.StateLevelTransition:
		c.drawPlayingHUD(termWidth, termHeight, frame)
		c.drawLevelBanner(centerX, centerY, frame)
	case sim.StateGameOver:
		c.drawGameOverScreen(centerX, centerY, frame)
	}
}

// writeBlock writes a possibly multi-line styled block centred on centerX,
// starting at row top.
func (c *Client) writeBlock(centerX, top int, block string) {
	width := lipgloss.Width(block)
	col := max(centerX-width/2, 1)
	for i, line := range strings.Split(block, "\n") {
		c.chunkWriter.WriteAt(col, top+i, line)
	}
}

// blink is true during the visible half of a prompt's blink cycle.
func blink() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	st := c.styles
	lines := []string{
		st.title.Render("S T A R D U S T   D R I F T E R"),
		st.subtitle.Render("~ ride the gravity, grab the stars ~"),
		"",
		st.label.Render("Controls"),
		"A D / < >  . . . . . . .  Aim",
		"W S / ^ v  . . . . . .  Power",
		"SPACE . . . . . . . . Launch",
		"Mouse drag  . . .  Slingshot",
		"R  . . . . . . . . .  Restart",
		"Q  . . . . . . . . . . . Quit",
		"",
	}
	if blink() {
		lines = append(lines, st.prompt.Render(">>  Press SPACE or click to start  <<"))
	} else {
		lines = append(lines, "")
	}
	if c.state.Best > 0 {
		lines = append(lines, "", st.label.Render("Best ")+st.value.Render(fmt.Sprint(c.state.Best)))
	}

	block := st.banner.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	c.writeBlock(centerX, centerY-lipgloss.Height(block)/2, block)
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, frame sim.Frame) {
	st := c.styles
	cw := c.chunkWriter

	hud := st.label.Render("Score ") + st.value.Render(fmt.Sprintf("%-8d", c.state.Score)) +
		st.label.Render("Goal ") + st.value.Render(fmt.Sprintf("%-8d", frame.RequiredScore)) +
		st.label.Render("Level ") + st.value.Render(fmt.Sprintf("%-3d", frame.Level))
	cw.WriteAt(2, 1, hud)

	if c.username != "" && termWidth > len(c.username)+lipgloss.Width(hud)+4 {
		cw.WriteAt(termWidth-len(c.username), 1, st.subtitle.Render(c.username))
	}

	if frame.State != sim.StatePlaying || frame.Player.Moving {
		cw.WriteAt(2, termHeight, strings.Repeat(" ", meterWidth+8))
		return
	}
	power := c.state.AimPower
	if frame.Aim.Active {
		power = frame.Aim.PowerFraction
	}
	filled := int(math.Round(power * meterWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", meterWidth-filled)
	cw.WriteAt(2, termHeight, st.label.Render("Power ")+st.meter.Render(bar))
}

// drawLevelBanner draws the banner shown between levels.
func (c *Client) drawLevelBanner(centerX, centerY int, frame sim.Frame) {
	st := c.styles
	lines := []string{
		st.title.Render(fmt.Sprintf("L E V E L   %d", frame.Level)),
		"",
		st.label.Render("Reach ") + st.value.Render(fmt.Sprint(frame.RequiredScore)) + st.label.Render(" points"),
	}
	if frame.Level >= c.tuning.CometStartLevel {
		lines = append(lines, st.warn.Render("Comets incoming!"))
	}
	lines = append(lines, "", st.subtitle.Render("press any key to skip"))

	block := st.banner.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	c.writeBlock(centerX, centerY-lipgloss.Height(block)/2, block)
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int, frame sim.Frame) {
	st := c.styles
	lines := []string{
		st.warn.Render("G A M E   O V E R"),
		"",
		st.label.Render("Score ") + st.value.Render(fmt.Sprint(c.state.LastFinal)),
		st.label.Render("Level ") + st.value.Render(fmt.Sprint(frame.Level)),
		st.label.Render("Best  ") + st.value.Render(fmt.Sprint(c.state.Best)),
		"",
	}
	if blink() {
		lines = append(lines, st.prompt.Render(">>  Press R to Restart  <<"))
	} else {
		lines = append(lines, "")
	}

	block := st.banner.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	c.writeBlock(centerX, centerY-lipgloss.Height(block)/2, block)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	st := c.styles
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	lines := []string{
		st.warn.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0)),
		"",
		st.prompt.Render("Press any key to continue"),
	}
	block := st.banner.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	c.writeBlock(centerX, centerY-lipgloss.Height(block)/2, block)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	st := c.styles
	lines := []string{
		st.warn.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1),
		st.subtitle.Render("Press Q to disconnect now"),
	}
	block := st.banner.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	c.writeBlock(centerX, centerY-lipgloss.Height(block)/2, block)
}
