package main

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/JDLundy87/stardust-drifter/internal/config"
	gameconfig "github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/loop/sim"
	"github.com/JDLundy87/stardust-drifter/internal/object"
)

const title = "Stardust Drifter"

var (
	colorSpace   = color.RGBA{0x05, 0x06, 0x12, 0xff}
	colorStar    = color.RGBA{0x9a, 0x9a, 0xb8, 0xff}
	colorPlayer  = color.RGBA{0xf0, 0xf0, 0xff, 0xff}
	colorComet   = color.RGBA{0xff, 0x7a, 0x3c, 0xff}
	colorPickup  = color.RGBA{0xff, 0xd7, 0x3a, 0xff}
	colorAim     = color.RGBA{0x5a, 0xff, 0x8c, 0xff}
	colorCentral = color.RGBA{0xc0, 0x5a, 0xff, 0xff}

	planetColors = []color.RGBA{
		{0x4f, 0x9d, 0xff, 0xff},
		{0x3c, 0xd0, 0x8a, 0xff},
		{0xe0, 0x6c, 0x5a, 0xff},
		{0xd8, 0xb4, 0x6a, 0xff},
	}
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in sim.
type Game struct {
	sim    *sim.Simulation
	log    *log.Logger
	width  int
	height int
	keys   []ebiten.Key

	score int
	final int
	best  int
}

// SetScore implements sim.ScoreSink.
func (g *Game) SetScore(score int) { g.score = score }

// ShowGameOver implements sim.GameOverSink.
func (g *Game) ShowGameOver(final int) {
	g.final = final
	g.best = max(g.best, final)
}

func NewGame(tuning gameconfig.Tuning, width, height int, logger *log.Logger) (*Game, error) {
	g := &Game{log: logger, width: width, height: height}
	s, err := sim.New(tuning, object.Screen{Width: float64(width), Height: float64(height)},
		sim.WithLogger(logger),
		sim.WithScoreSink(g),
		sim.WithGameOverSink(g),
	)
	if err != nil {
		return nil, err
	}
	g.sim = s
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
		return nil
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.sim.PointerDown(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.sim.PointerUp(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.sim.PointerMove(x, y)
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	if len(g.keys) > 0 {
		g.sim.KeyDown()
	}

	g.sim.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSpace)
	f := g.sim.View()

	for _, s := range f.Background {
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), colorStar, false)
	}
	for _, p := range f.Planets {
		clr := planetColors[p.Variant%len(planetColors)]
		if p.Central {
			clr = colorCentral
		}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), clr, true)
	}
	for _, c := range f.Comets {
		vector.StrokeLine(screen, float32(c.X), float32(c.Y),
			float32(c.X-c.VX*8), float32(c.Y-c.VY*8), float32(c.Radius), colorComet, true)
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), colorComet, true)
	}
	for _, s := range f.Pickups {
		vector.StrokeCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius), 2, colorPickup, true)
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.Radius/2), colorPickup, true)
	}

	p := f.Player
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), colorPlayer, true)
	if f.Aim.Active {
		angle := math.Atan2(f.Aim.FromY-f.Aim.ToY, f.Aim.FromX-f.Aim.ToX)
		length := (40 + f.Aim.PowerFraction*120) * f.Scale
		vector.StrokeLine(screen, float32(p.X), float32(p.Y),
			float32(p.X+math.Cos(angle)*length), float32(p.Y+math.Sin(angle)*length), 2, colorAim, true)
	}

	g.drawHUD(screen, f)
}

func (g *Game) drawHUD(screen *ebiten.Image, f sim.Frame) {
	face := basicfont.Face7x13
	cx := g.width / 2
	cy := g.height / 2
	centered := func(s string, y int, clr color.Color) {
		text.Draw(screen, s, face, cx-len(s)*7/2, y, clr)
	}

	switch f.State {
	case sim.StateStart:
		centered(title, cy-30, colorCentral)
		centered("Drag back from the ship and release to launch", cy, color.White)
		centered("Click or press any key to start", cy+20, colorPickup)
		if g.best > 0 {
			centered(fmt.Sprintf("Best %d", g.best), cy+50, color.White)
		}
		return
	case sim.StateLevelTransition:
		centered(fmt.Sprintf("LEVEL %d", f.Level), cy-10, colorCentral)
		centered(fmt.Sprintf("Reach %d points", f.RequiredScore), cy+10, color.White)
	case sim.StateGameOver:
		centered("GAME OVER", cy-20, colorComet)
		centered(fmt.Sprintf("Score %d   Best %d", g.final, g.best), cy, color.White)
		centered("Press R to restart", cy+20, colorPickup)
	}

	hud := fmt.Sprintf("Score %d / %d   Level %d", g.score, f.RequiredScore, f.Level)
	text.Draw(screen, hud, face, 10, 20, color.White)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		if err := g.sim.Resize(float64(outsideWidth), float64(outsideHeight)); err != nil {
			g.log.Error("resize", "err", err)
		} else {
			g.width, g.height = outsideWidth, outsideHeight
		}
	}
	return g.width, g.height
}

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, "window")

	width := config.GetEnvInt("STARDUST_WINDOW_WIDTH", gameconfig.ViewWidth)
	height := config.GetEnvInt("STARDUST_WINDOW_HEIGHT", gameconfig.ViewHeight)

	game, err := NewGame(gameconfig.FromEnv(), width, height, logger)
	if err != nil {
		logger.Fatal("create game", "err", err)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameconfig.TargetFPS)

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", "err", err)
	}
}
