// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"
	"time"

	env "github.com/JDLundy87/stardust-drifter/internal/config"
	"github.com/JDLundy87/stardust-drifter/internal/physics"
)

// ErrInvalidConfig is returned by Tuning.Validate.
var ErrInvalidConfig = errors.New("invalid game configuration")

// BaseHeight is the reference viewport height. Every size and speed below is
// expressed at this height and multiplied by Scale at entity creation.
const BaseHeight = 800

// Terminal view resolution - the logical play area used by terminal frontends.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 1200
	ViewHeight = 800
)

// Physics
const (
	GravityConstant = 0.5
	LaunchDivisor   = 10.0 // Drag pixels per unit of launch speed
	MaxLaunchPower  = 15.0 // Pixels per tick
)

// Player
const (
	PlayerRadius      = 10.0
	PlayerSpawnOffset = 60.0 // Distance of the spawn point above the bottom edge
)

// Planets
const (
	CentralPlanetRadius = 60.0
	PlanetMinRadius     = 20.0
	PlanetMaxRadius     = 50.0
	PlanetMaxDrift      = 1.0 // Pixels per tick, per axis
	BasePlanetCount     = 3
	PlanetCountPerLevel = 1
	PlanetVariants      = 4
)

// Comets
const (
	CometStartLevel = 3
	CometRadius     = 12.0
	CometMinSpeed   = 2.0
	CometMaxSpeed   = 4.0
	CometDrift      = 1.5
)

// Stars
const (
	StarRadius          = 8.0
	StarReward          = 100
	StarSpawnChance     = 0.02 // Per tick
	StarSpawnMargin     = 30.0
	MaxPickups          = 12
	BackgroundStarCount = 150
)

// Progression
const (
	BaseScoreThreshold       = 1000
	ScoreThresholdMultiplier = 1.5
	LevelTransitionDelay     = 2 * time.Second
)

// Collision
const (
	MinGridCellSize = 64.0
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal client
const (
	MaxTermWidth    = 240  // Render area is clamped to this many columns
	MaxTermHeight   = 80   // and this many rows, then centered
	AimTurnRate     = 0.05 // Radians per frame while an aim key is held
	AimPowerStep    = 0.02 // Fraction of max power per frame
	DefaultAimPower = 0.5
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Tuning is the full set of gameplay parameters for one simulation. Sizes and
// speeds are at BaseHeight; the simulation scales them.
type Tuning struct {
	Gravity        float64
	LaunchDivisor  float64
	MaxLaunchPower float64

	PlayerRadius      float64
	PlayerSpawnOffset float64

	CentralPlanetRadius float64
	PlanetMinRadius     float64
	PlanetMaxRadius     float64
	PlanetMaxDrift      float64
	BasePlanetCount     int
	PlanetCountPerLevel int
	PlanetVariants      int

	CometStartLevel int
	CometRadius     float64
	CometMinSpeed   float64
	CometMaxSpeed   float64
	CometDrift      float64

	StarRadius          float64
	StarReward          int
	StarSpawnChance     float64
	StarSpawnMargin     float64
	MaxPickups          int
	BackgroundStarCount int

	BaseScoreThreshold       int
	ScoreThresholdMultiplier float64
	LevelTransitionDelay     time.Duration

	MinGridCellSize float64
	Broadphase      string // physics.BroadphaseGrid or physics.BroadphaseLinear
	Seed            uint64 // 0 picks a seed from the clock
}

// Default returns the tuning built from the package constants.
func Default() Tuning {
	return Tuning{
		Gravity:        GravityConstant,
		LaunchDivisor:  LaunchDivisor,
		MaxLaunchPower: MaxLaunchPower,

		PlayerRadius:      PlayerRadius,
		PlayerSpawnOffset: PlayerSpawnOffset,

		CentralPlanetRadius: CentralPlanetRadius,
		PlanetMinRadius:     PlanetMinRadius,
		PlanetMaxRadius:     PlanetMaxRadius,
		PlanetMaxDrift:      PlanetMaxDrift,
		BasePlanetCount:     BasePlanetCount,
		PlanetCountPerLevel: PlanetCountPerLevel,
		PlanetVariants:      PlanetVariants,

		CometStartLevel: CometStartLevel,
		CometRadius:     CometRadius,
		CometMinSpeed:   CometMinSpeed,
		CometMaxSpeed:   CometMaxSpeed,
		CometDrift:      CometDrift,

		StarRadius:          StarRadius,
		StarReward:          StarReward,
		StarSpawnChance:     StarSpawnChance,
		StarSpawnMargin:     StarSpawnMargin,
		MaxPickups:          MaxPickups,
		BackgroundStarCount: BackgroundStarCount,

		BaseScoreThreshold:       BaseScoreThreshold,
		ScoreThresholdMultiplier: ScoreThresholdMultiplier,
		LevelTransitionDelay:     LevelTransitionDelay,

		MinGridCellSize: MinGridCellSize,
		Broadphase:      physics.BroadphaseGrid,
	}
}

// FromEnv returns Default with overrides from STARDUST_* environment variables.
func FromEnv() Tuning {
	t := Default()
	t.Gravity = env.GetEnvFloat("STARDUST_GRAVITY", t.Gravity)
	t.BasePlanetCount = env.GetEnvInt("STARDUST_BASE_PLANETS", t.BasePlanetCount)
	t.CometStartLevel = env.GetEnvInt("STARDUST_COMET_LEVEL", t.CometStartLevel)
	t.StarSpawnChance = env.GetEnvFloat("STARDUST_STAR_CHANCE", t.StarSpawnChance)
	t.LevelTransitionDelay = env.GetEnvDuration("STARDUST_TRANSITION_DELAY", t.LevelTransitionDelay)
	t.Broadphase = env.GetEnv("STARDUST_BROADPHASE", t.Broadphase)
	t.Seed = uint64(env.GetEnvInt("STARDUST_SEED", int(t.Seed)))
	return t
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(t.Gravity >= 0, "gravity %v is negative", t.Gravity)
	check(t.LaunchDivisor > 0, "launch divisor %v must be positive", t.LaunchDivisor)
	check(t.MaxLaunchPower > 0, "max launch power %v must be positive", t.MaxLaunchPower)
	check(t.PlayerRadius > 0, "player radius %v must be positive", t.PlayerRadius)
	check(t.CentralPlanetRadius > 0, "central planet radius %v must be positive", t.CentralPlanetRadius)
	check(t.PlanetMinRadius > 0 && t.PlanetMinRadius <= t.PlanetMaxRadius,
		"planet radius range [%v, %v) is empty", t.PlanetMinRadius, t.PlanetMaxRadius)
	check(t.PlanetMaxDrift >= 0, "planet drift %v is negative", t.PlanetMaxDrift)
	check(t.BasePlanetCount >= 0, "base planet count %d is negative", t.BasePlanetCount)
	check(t.PlanetCountPerLevel >= 0, "planets per level %d is negative", t.PlanetCountPerLevel)
	check(t.PlanetVariants > 0, "planet variants %d must be positive", t.PlanetVariants)
	check(t.CometStartLevel >= 1, "comet start level %d must be at least 1", t.CometStartLevel)
	check(t.CometRadius > 0, "comet radius %v must be positive", t.CometRadius)
	check(t.CometMinSpeed > 0 && t.CometMinSpeed <= t.CometMaxSpeed,
		"comet speed range [%v, %v) is invalid", t.CometMinSpeed, t.CometMaxSpeed)
	check(t.StarRadius > 0, "star radius %v must be positive", t.StarRadius)
	check(t.StarReward > 0, "star reward %d must be positive", t.StarReward)
	check(t.StarSpawnChance >= 0 && t.StarSpawnChance <= 1, "star spawn chance %v outside [0, 1]", t.StarSpawnChance)
	check(t.MaxPickups >= 0, "max pickups %d is negative", t.MaxPickups)
	check(t.BackgroundStarCount >= 0, "background star count %d is negative", t.BackgroundStarCount)
	check(t.BaseScoreThreshold > 0, "base score threshold %d must be positive", t.BaseScoreThreshold)
	check(t.ScoreThresholdMultiplier > 1, "score multiplier %v must exceed 1", t.ScoreThresholdMultiplier)
	// Consecutive thresholds differ by at least base*(mult-1) before rounding.
	check(float64(t.BaseScoreThreshold)*(t.ScoreThresholdMultiplier-1) >= 1,
		"score threshold %d x%v does not grow by a whole point per level", t.BaseScoreThreshold, t.ScoreThresholdMultiplier)
	check(t.LevelTransitionDelay >= 0, "transition delay %v is negative", t.LevelTransitionDelay)
	check(t.MinGridCellSize > 0, "grid cell floor %v must be positive", t.MinGridCellSize)
	check(t.Broadphase == physics.BroadphaseGrid || t.Broadphase == physics.BroadphaseLinear,
		"unknown broadphase %q", t.Broadphase)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Scale returns the resolution factor for a viewport of the given height.
func Scale(viewportHeight float64) float64 {
	return viewportHeight / BaseHeight
}
