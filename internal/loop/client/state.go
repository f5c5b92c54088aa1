package client

import (
	"math"
	"time"

	"github.com/JDLundy87/stardust-drifter/internal/draw"
	"github.com/JDLundy87/stardust-drifter/internal/input"
	"github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/loop/sim"
)

// ClientState holds per-session state that lives outside the simulation:
// keyboard aim, the score display and connection bookkeeping.
type ClientState struct {
	Input     input.Input
	AimAngle  float64 // Radians; -Pi/2 points straight up
	AimPower  float64 // Fraction of max launch power, in [0, 1]
	Score     int     // Mirrors the simulation through ScoreSink
	LastFinal int     // Final score of the last game, through GameOverSink
	Best      int     // Best final score this session
	Running   bool    // Client loop running

	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	delta         time.Duration     // Frame delta time
	shuttingDown  bool              // Host is going away
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state

	prevState   sim.State // Detects screen changes that need a full clear
	wasInactive bool
	wasShutdown bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	s := &ClientState{Running: true}
	s.ResetAim()
	return s
}

// ResetAim points the launcher straight up at the default power.
func (s *ClientState) ResetAim() {
	s.AimAngle = -math.Pi / 2
	s.AimPower = config.DefaultAimPower
}

// SetScore implements sim.ScoreSink.
func (s *ClientState) SetScore(score int) {
	s.Score = score
}

// ShowGameOver implements sim.GameOverSink.
func (s *ClientState) ShowGameOver(final int) {
	s.LastFinal = final
	s.Best = max(s.Best, final)
}

var (
	_ sim.ScoreSink    = (*ClientState)(nil)
	_ sim.GameOverSink = (*ClientState)(nil)
)
