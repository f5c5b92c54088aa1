// Package sim runs one game: entity motion, collisions, level progression and
// the state machine. It is single-threaded; the host calls Tick once per frame
// and feeds input between ticks.
package sim

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/JDLundy87/stardust-drifter/internal/level"
	"github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/object"
	"github.com/JDLundy87/stardust-drifter/internal/physics"
)

// Option customizes a Simulation.
type Option func(*Simulation)

// WithClock sets the source of wall-clock time for deferred transitions.
func WithClock(c TimeProvider) Option {
	return func(s *Simulation) { s.clock = c }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithScoreSink registers a receiver for score changes.
func WithScoreSink(sink ScoreSink) Option {
	return func(s *Simulation) { s.scoreSink = sink }
}

// WithGameOverSink registers a receiver for the final score.
func WithGameOverSink(sink GameOverSink) Option {
	return func(s *Simulation) { s.gameOverSink = sink }
}

// Simulation owns every entity of one game and advances them tick by tick.
type Simulation struct {
	tuning config.Tuning
	screen object.Screen
	scale  float64
	limits object.LaunchLimits

	rng      *rand.Rand
	director *level.Director
	stage    level.Stage

	pickups    []*object.CollectableStar
	background []object.BackgroundStar

	state State
	score int
	level int

	// One collider per collection, each with its own index.
	planetHits *physics.Collider
	cometHits  *physics.Collider
	pickupHits *physics.Collider

	sched *Scheduler
	clock TimeProvider
	log   *log.Logger

	scoreSink    ScoreSink
	gameOverSink GameOverSink

	dragging     bool
	downX, downY float64
	aimX, aimY   float64
}

// New creates a simulation for a play area of screen size and puts it in the
// start state. The tuning is validated here; an invalid one is an error.
func New(tuning config.Tuning, screen object.Screen, opts ...Option) (*Simulation, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		tuning: tuning,
		sched:  &Scheduler{},
		clock:  SystemClock{},
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	seed := tuning.Seed
	if seed == 0 {
		seed = uint64(s.clock.Now().UnixNano())
	}
	s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	if err := s.Resize(screen.Width, screen.Height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize adopts a new play area. Sizes are derived from the height, so this
// is a full reset.
func (s *Simulation) Resize(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("%w: play area %vx%v", config.ErrInvalidConfig, width, height)
	}

	screen := object.Screen{Width: width, Height: height}
	scale := config.Scale(height)
	director := level.NewDirector(s.tuning, screen, scale, s.rng)

	danger := director.LargestDangerRadius()
	cell := math.Max(2*danger, s.tuning.MinGridCellSize)
	playerR := s.tuning.PlayerRadius * scale

	var colliders [3]*physics.Collider
	reach := [3]float64{playerR + danger, playerR + danger, playerR + s.tuning.StarRadius*scale}
	for i := range colliders {
		index, err := physics.NewBroadphase(s.tuning.Broadphase, width, height, cell)
		if err != nil {
			return fmt.Errorf("build collision index: %w", err)
		}
		colliders[i] = physics.NewCollider(index, reach[i])
	}

	s.screen = screen
	s.scale = scale
	s.director = director
	s.limits = object.LaunchLimits{
		Divisor:  s.tuning.LaunchDivisor,
		MaxPower: s.tuning.MaxLaunchPower,
		Scale:    scale,
	}
	s.planetHits, s.cometHits, s.pickupHits = colliders[0], colliders[1], colliders[2]

	s.log.Debug("play area", "width", width, "height", height, "scale", scale, "cell", cell)
	s.Reset()
	return nil
}

// Reset returns to the start state with score 0 and level 1. Pending deferred
// transitions are dropped.
func (s *Simulation) Reset() {
	s.sched.Reset()

	s.stage.Player = s.director.NewPlayer()
	s.stage.Planets = nil
	s.stage.Comets = nil
	s.pickups = nil
	s.background = s.director.BackgroundStars()
	s.dragging = false

	s.level = 1
	s.setScore(0)
	s.setState(StateStart)
}

// State returns the current phase.
func (s *Simulation) State() State { return s.state }

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// Level returns the current level number.
func (s *Simulation) Level() int { return s.level }

// PointerDown handles a press at (x, y). In the start state it begins play and
// during a level transition it skips the wait; neither starts a drag.
func (s *Simulation) PointerDown(x, y float64) {
	switch s.state {
	case StateStart:
		s.begin()
	case StateLevelTransition:
		s.skipTransition()
	case StatePlaying:
		if s.stage.Player.Moving {
			return
		}
		s.dragging = true
		s.downX, s.downY = x, y
		s.aimX, s.aimY = x, y
	}
}

// PointerMove updates the drag preview.
func (s *Simulation) PointerMove(x, y float64) {
	if s.dragging {
		s.aimX, s.aimY = x, y
	}
}

// PointerUp releases a drag at (x, y) and launches the player along the
// vector from the release point back to the press point.
func (s *Simulation) PointerUp(x, y float64) {
	if !s.dragging {
		return
	}
	s.dragging = false
	s.Launch(s.downX-x, s.downY-y)
}

// KeyDown handles any key press: it begins play or skips a level transition.
func (s *Simulation) KeyDown() {
	switch s.state {
	case StateStart:
		s.begin()
	case StateLevelTransition:
		s.skipTransition()
	}
}

// Launch sends the resting player along (dx, dy). It reports whether the
// player was launched.
func (s *Simulation) Launch(dx, dy float64) bool {
	if s.state != StatePlaying {
		return false
	}
	if !s.stage.Player.Launch(dx, dy, s.limits) {
		return false
	}
	s.log.Debug("launch", "vx", s.stage.Player.VX, "vy", s.stage.Player.VY)
	return true
}

// LaunchLimits returns the drag to speed conversion for the current scale.
func (s *Simulation) LaunchLimits() object.LaunchLimits {
	return s.limits
}

// Tick runs due deferred transitions and, while playing, advances the game by
// one frame.
func (s *Simulation) Tick() {
	s.sched.Poll(s.clock.Now())
	if s.state != StatePlaying {
		return
	}

	for _, p := range s.stage.Planets {
		p.Advance(s.screen)
	}

	comets := s.stage.Comets[:0]
	for _, c := range s.stage.Comets {
		if !c.Advance(s.screen) {
			comets = append(comets, c)
		}
	}
	clear(s.stage.Comets[len(comets):])
	s.stage.Comets = comets

	player := s.stage.Player
	if player.Moving {
		ax, ay := physics.Gravity(player.X, player.Y, s.stage.Planets, s.tuning.Gravity, s.scale)
		player.Advance(ax, ay)
	}

	if star := s.director.SpawnPickup(len(s.pickups)); star != nil {
		s.pickups = append(s.pickups, star)
	}

	if !s.screen.Contains(player.X, player.Y) {
		s.gameOver("boundary")
		return
	}

	body := player.Circle()
	if i := physics.FirstHit(s.planetHits, body, s.stage.Planets); i >= 0 {
		s.gameOver("planet")
		return
	}
	if i := physics.FirstHit(s.cometHits, body, s.stage.Comets); i >= 0 {
		s.gameOver("comet")
		return
	}

	s.collectPickups(body)

	if s.director.CheckCompletion(s.score, s.level) {
		s.level++
		s.log.Info("level complete", "level", s.level, "score", s.score)
		s.startLevel()
	}
}

// collectPickups scores every star the player touches and removes it.
func (s *Simulation) collectPickups(body physics.Circle) {
	collected := 0
	physics.EachHit(s.pickupHits, body, s.pickups, func(i int) {
		s.pickups[i] = nil
		collected++
	})
	if collected == 0 {
		return
	}

	kept := s.pickups[:0]
	for _, p := range s.pickups {
		if p != nil {
			kept = append(kept, p)
		}
	}
	clear(s.pickups[len(kept):])
	s.pickups = kept

	s.setScore(s.score + collected*s.tuning.StarReward)
}

// View returns a snapshot of the game for rendering.
func (s *Simulation) View() Frame {
	f := Frame{
		State:         s.state,
		Screen:        s.screen,
		Scale:         s.scale,
		Score:         s.score,
		Level:         s.level,
		RequiredScore: s.director.RequiredScore(s.level),
		Player:        *s.stage.Player,
		Planets:       s.stage.Planets,
		Comets:        s.stage.Comets,
		Pickups:       s.pickups,
		Background:    s.background,
	}
	if s.dragging {
		power := object.LaunchPower(math.Hypot(s.downX-s.aimX, s.downY-s.aimY), s.limits)
		f.Aim = Aim{
			Active:        true,
			FromX:         s.downX,
			FromY:         s.downY,
			ToX:           s.aimX,
			ToY:           s.aimY,
			Power:         power,
			PowerFraction: power / (s.limits.MaxPower * s.limits.Scale),
		}
	}
	return f
}

// begin leaves the start state straight into play on level 1.
func (s *Simulation) begin() {
	s.director.StartLevel(&s.stage, s.level)
	s.setState(StatePlaying)
}

// startLevel builds the content of the current level and shows its banner
// until the transition delay elapses or the player skips it.
func (s *Simulation) startLevel() {
	s.dragging = false
	s.director.StartLevel(&s.stage, s.level)
	s.setState(StateLevelTransition)

	s.sched.After(s.clock.Now(), s.tuning.LevelTransitionDelay, func() {
		if s.state == StateLevelTransition {
			s.setState(StatePlaying)
		}
	})
}

func (s *Simulation) skipTransition() {
	// Drop the pending timer so it cannot cut a later banner short.
	s.sched.Reset()
	s.setState(StatePlaying)
}

func (s *Simulation) gameOver(cause string) {
	s.dragging = false
	s.setState(StateGameOver)
	s.log.Info("game over", "cause", cause, "score", s.score, "level", s.level)
	if s.gameOverSink != nil {
		s.gameOverSink.ShowGameOver(s.score)
	}
}

func (s *Simulation) setState(next State) {
	if s.state != next {
		s.log.Debug("state", "from", s.state, "to", next, "level", s.level)
	}
	s.state = next
}

func (s *Simulation) setScore(score int) {
	s.score = score
	if s.scoreSink != nil {
		s.scoreSink.SetScore(score)
	}
}
