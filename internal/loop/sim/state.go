package sim

import "github.com/JDLundy87/stardust-drifter/internal/object"

// State is the phase of the game.
type State int

const (
	StateStart           State = iota // Waiting for the first input
	StateLevelTransition              // Level banner; content already generated
	StatePlaying                      // Simulation running
	StateGameOver                     // Frozen until Reset
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateLevelTransition:
		return "level_transition"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Aim describes an in-progress launch drag.
type Aim struct {
	Active        bool
	FromX, FromY  float64 // Press point
	ToX, ToY      float64 // Current pointer position
	Power         float64 // Launch speed the drag would produce now
	PowerFraction float64 // Power / maximum power, in [0, 1]
}

// Frame is a read-only view of the simulation for renderers. The slices alias
// simulation storage and are only valid until the next Tick or input call.
type Frame struct {
	State  State
	Screen object.Screen
	Scale  float64

	Score         int
	Level         int
	RequiredScore int

	Player     object.Player
	Planets    []*object.Planet
	Comets     []*object.Comet
	Pickups    []*object.CollectableStar
	Background []object.BackgroundStar

	Aim Aim
}

// ScoreSink is told about every score change.
type ScoreSink interface {
	SetScore(score int)
}

// GameOverSink is told the final score when the game ends.
type GameOverSink interface {
	ShowGameOver(finalScore int)
}
