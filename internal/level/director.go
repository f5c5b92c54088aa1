// Package level generates the content of each level and tracks progression.
package level

import (
	"math"
	"math/rand/v2"

	"github.com/JDLundy87/stardust-drifter/internal/loop/config"
	"github.com/JDLundy87/stardust-drifter/internal/object"
)

// Stage is the set of entities whose lifecycle the director owns.
type Stage struct {
	Player  *object.Player
	Planets []*object.Planet
	Comets  []*object.Comet
}

// Director builds planets, comets and pickups for a play area and decides when
// a level is complete. All sizes are scaled once, at creation.
type Director struct {
	tuning config.Tuning
	screen object.Screen
	scale  float64
	rng    *rand.Rand
}

// NewDirector creates a director for the given play area. The tuning must
// already be validated.
func NewDirector(tuning config.Tuning, screen object.Screen, scale float64, rng *rand.Rand) *Director {
	return &Director{
		tuning: tuning,
		screen: screen,
		scale:  scale,
		rng:    rng,
	}
}

// SpawnPoint is where the player rests at the start of every level.
func (d *Director) SpawnPoint() (float64, float64) {
	return d.screen.Width / 2, d.screen.Height - d.tuning.PlayerSpawnOffset*d.scale
}

// NewPlayer creates a resting player at the spawn point.
func (d *Director) NewPlayer() *object.Player {
	x, y := d.SpawnPoint()
	return object.NewPlayer(x, y, d.tuning.PlayerRadius*d.scale)
}

// PlanetCount returns how many random planets a level gets, not counting the
// central one.
func (d *Director) PlanetCount(level int) int {
	return d.tuning.BasePlanetCount + (level-1)*d.tuning.PlanetCountPerLevel
}

// GeneratePlanets returns a fresh planet set for the level: the central planet
// followed by PlanetCount(level) random ones.
func (d *Director) GeneratePlanets(level int) []*object.Planet {
	n := d.PlanetCount(level)
	planets := make([]*object.Planet, 0, n+1)

	cx, cy := d.screen.Center()
	planets = append(planets, &object.Planet{
		X:       cx,
		Y:       cy,
		Radius:  d.tuning.CentralPlanetRadius * d.scale,
		Variant: d.rng.IntN(d.tuning.PlanetVariants),
		Central: true,
	})

	minR, maxR := d.tuning.PlanetMinRadius, d.tuning.PlanetMaxRadius
	drift := d.tuning.PlanetMaxDrift
	for i := 0; i < n; i++ {
		planets = append(planets, &object.Planet{
			X:       d.rng.Float64() * d.screen.Width,
			Y:       d.rng.Float64() * d.screen.Height,
			VX:      (d.rng.Float64()*2 - 1) * drift * d.scale,
			VY:      (d.rng.Float64()*2 - 1) * drift * d.scale,
			Radius:  (minR + d.rng.Float64()*(maxR-minR)) * d.scale,
			Variant: d.rng.IntN(d.tuning.PlanetVariants),
		})
	}
	return planets
}

// CometsEnabled reports whether comets appear on the given level.
func (d *Director) CometsEnabled(level int) bool {
	return level >= d.tuning.CometStartLevel
}

// GenerateComet creates one comet entering from a random edge.
func (d *Director) GenerateComet() *object.Comet {
	speed := object.CometSpeed{
		InwardMin: d.tuning.CometMinSpeed * d.scale,
		InwardMax: d.tuning.CometMaxSpeed * d.scale,
		Drift:     d.tuning.CometDrift * d.scale,
	}
	return object.NewCometAtEdge(d.screen, d.tuning.CometRadius*d.scale, speed, d.rng)
}

// StartLevel resets the player to the spawn point, replaces every planet and
// rebuilds the comet list for the level.
func (d *Director) StartLevel(stage *Stage, level int) {
	x, y := d.SpawnPoint()
	stage.Player.Reset(x, y)
	stage.Planets = d.GeneratePlanets(level)

	clear(stage.Comets)
	stage.Comets = stage.Comets[:0]
	if d.CometsEnabled(level) {
		stage.Comets = append(stage.Comets, d.GenerateComet())
	}
}

// RequiredScore is the score that completes the level:
// BaseScoreThreshold * ScoreThresholdMultiplier^(level-1), rounded.
func (d *Director) RequiredScore(level int) int {
	v := float64(d.tuning.BaseScoreThreshold) * math.Pow(d.tuning.ScoreThresholdMultiplier, float64(level-1))
	if v >= math.MaxInt64/2 {
		return math.MaxInt64 / 2
	}
	return int(math.Round(v))
}

// CheckCompletion reports whether score completes the level.
func (d *Director) CheckCompletion(score, level int) bool {
	return score >= d.RequiredScore(level)
}

// SpawnPickup rolls the per-tick pickup chance. It returns nil when the roll
// fails or live pickups are already at the cap.
func (d *Director) SpawnPickup(live int) *object.CollectableStar {
	if live >= d.tuning.MaxPickups || d.rng.Float64() >= d.tuning.StarSpawnChance {
		return nil
	}
	margin := d.tuning.StarSpawnMargin * d.scale
	w := math.Max(d.screen.Width-2*margin, 0)
	h := math.Max(d.screen.Height-2*margin, 0)
	return &object.CollectableStar{
		X:      margin + d.rng.Float64()*w,
		Y:      margin + d.rng.Float64()*h,
		Radius: d.tuning.StarRadius * d.scale,
	}
}

// BackgroundStars returns a fresh decorative starfield.
func (d *Director) BackgroundStars() []object.BackgroundStar {
	stars := make([]object.BackgroundStar, d.tuning.BackgroundStarCount)
	for i := range stars {
		stars[i] = object.BackgroundStar{
			X:      d.rng.Float64() * d.screen.Width,
			Y:      d.rng.Float64() * d.screen.Height,
			Radius: (0.5 + d.rng.Float64()) * d.scale,
		}
	}
	return stars
}

// LargestDangerRadius is the biggest radius any planet or comet can have.
func (d *Director) LargestDangerRadius() float64 {
	r := math.Max(d.tuning.CentralPlanetRadius, d.tuning.PlanetMaxRadius)
	return math.Max(r, d.tuning.CometRadius) * d.scale
}
