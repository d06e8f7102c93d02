package gamestate

import (
	"math"
	"slices"
	"strings"

	"github.com/brunoga/deep"
)

var (
	DefaultDifficultyLevels     = []string{"rookie", "regular", "advanced", "expert"}
	DefaultExperienceThresholds = []int{0, 100, 250, 500, 800}
)

type Config struct {
	DifficultyLevels     []string
	ExperienceThresholds []int
	Difficulty           string
	Stage                int
	Experience           int
}

type State struct {
	Difficulty    string
	Stage         int
	Level         int // derived from experience thresholds
	Experience    int
	ActiveFlights int
}

type Metrics struct {
	FlightsHandled int
	Collisions     int
	Missed         int
	Score          int
}

type Snapshot struct {
	State                State
	Metrics              Metrics
	DifficultyLevels     []string
	ExperienceThresholds []int
}

// GameState is the player's running tally across stages: score, stage,
// experience level and difficulty.
type GameState struct {
	difficultyLevels     []string
	experienceThresholds []int

	state   State
	metrics Metrics
}

func New(cfg Config) *GameState {
	gs := &GameState{
		difficultyLevels:     slices.Clone(DefaultDifficultyLevels),
		experienceThresholds: slices.Clone(DefaultExperienceThresholds),
	}
	if len(cfg.DifficultyLevels) > 0 {
		gs.difficultyLevels = slices.Clone(cfg.DifficultyLevels)
	}
	if len(cfg.ExperienceThresholds) > 0 {
		gs.experienceThresholds = slices.Clone(cfg.ExperienceThresholds)
		slices.Sort(gs.experienceThresholds)
	}

	gs.state = State{
		Difficulty: gs.normalizeDifficulty(cfg.Difficulty),
		Stage:      max(cfg.Stage, 1),
		Experience: max(cfg.Experience, 0),
	}
	gs.updateLevel()
	return gs
}

func (gs *GameState) SetDifficulty(level string) string {
	gs.state.Difficulty = gs.normalizeDifficulty(level)
	return gs.state.Difficulty
}

func (gs *GameState) Difficulty() string { return gs.state.Difficulty }

// DifficultyIndex is the position of the current difficulty in the
// configured levels, 0 for the easiest.
func (gs *GameState) DifficultyIndex() int {
	return max(slices.Index(gs.difficultyLevels, gs.state.Difficulty), 0)
}

func (gs *GameState) AddExperience(amount int) int {
	if amount <= 0 {
		return gs.state.Experience
	}
	gs.state.Experience += amount
	gs.updateLevel()
	return gs.state.Experience
}

func (gs *GameState) Level() int { return gs.state.Level }

func (gs *GameState) SetStage(stage int) int {
	if stage < 1 {
		return gs.state.Stage
	}
	gs.state.Stage = stage
	return gs.state.Stage
}

func (gs *GameState) Stage() int { return gs.state.Stage }

func (gs *GameState) IncrementFlightsHandled(count int) int {
	if count > 0 {
		gs.metrics.FlightsHandled += count
	}
	return gs.metrics.FlightsHandled
}

func (gs *GameState) RecordCollisions(count int) int {
	if count > 0 {
		gs.metrics.Collisions += count
	}
	return gs.metrics.Collisions
}

func (gs *GameState) RecordMissed(count int) int {
	if count > 0 {
		gs.metrics.Missed += count
	}
	return gs.metrics.Missed
}

func (gs *GameState) AdjustScore(delta int) int {
	gs.metrics.Score += delta
	return gs.metrics.Score
}

func (gs *GameState) Score() int { return gs.metrics.Score }

func (gs *GameState) SetActiveFlights(count int) int {
	if count >= 0 {
		gs.state.ActiveFlights = count
	}
	return gs.state.ActiveFlights
}

func (gs *GameState) ActiveFlights() int { return gs.state.ActiveFlights }

func (gs *GameState) SetExperienceThresholds(thresholds []int) []int {
	if len(thresholds) > 0 {
		gs.experienceThresholds = slices.Clone(thresholds)
		slices.Sort(gs.experienceThresholds)
		gs.updateLevel()
	}
	return slices.Clone(gs.experienceThresholds)
}

func (gs *GameState) ResetMetrics() {
	gs.metrics = Metrics{}
}

// ResetState starts a fresh game at stage 1, keeping the difficulty unless
// one is given.
func (gs *GameState) ResetState(difficulty string) {
	if difficulty == "" {
		difficulty = gs.state.Difficulty
	}
	gs.state = State{
		Difficulty: gs.normalizeDifficulty(difficulty),
		Stage:      1,
	}
	gs.updateLevel()
}

func (gs *GameState) Snapshot() Snapshot {
	return deep.MustCopy(Snapshot{
		State:                gs.state,
		Metrics:              gs.metrics,
		DifficultyLevels:     gs.difficultyLevels,
		ExperienceThresholds: gs.experienceThresholds,
	})
}

func (gs *GameState) normalizeDifficulty(level string) string {
	level = strings.TrimSpace(level)
	for _, l := range gs.difficultyLevels {
		if strings.EqualFold(l, level) {
			return l
		}
	}
	return gs.difficultyLevels[0]
}

func (gs *GameState) updateLevel() {
	level := 1
	for i, threshold := range gs.experienceThresholds {
		if gs.state.Experience >= threshold {
			level = i + 1
		}
	}
	gs.state.Level = level
}

// SpawnIntervalScale shortens the spawn interval as difficulty rises:
// 1.0 for the easiest level, down to 0.55 for the fourth.
func (gs *GameState) SpawnIntervalScale() float64 {
	return math.Max(0.4, 1-0.15*float64(gs.DifficultyIndex()))
}
