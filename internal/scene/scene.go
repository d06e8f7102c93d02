package scene

import (
	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/game/airspace"
	"atc-radar/internal/game/gamestate"
	"atc-radar/internal/game/simulation"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"fmt"

	"github.com/labstack/gommon/log"
)

type Phase int

const (
	ATTRACT Phase = iota
	PLAYING
	STAGE_COMPLETE
	GAME_OVER
)

var PhaseStringMap = map[Phase]string{
	ATTRACT:        "ATTRACT",
	PLAYING:        "PLAYING",
	STAGE_COMPLETE: "STAGE COMPLETE",
	GAME_OVER:      "GAME OVER",
}

type Options struct {
	Bounds  types.Bounds
	Airport *airspace.Airport
	Traffic simulation.Options
	Game    gamestate.Config
}

// Scene ties the traffic core to the things around it: the clock, the
// airspace and runway in use, the pointer, and the running game tally.
type Scene struct {
	Airspace *airspace.Airspace
	Traffic  *simulation.TrafficManager
	State    *gamestate.GameState

	clock       Clock
	pointer     *types.Vec2
	phase       Phase
	baseOptions simulation.Options
	rng         rand.Source

	startedAt       float64
	endedAt         float64
	stageStartScore int
	lastTick        simulation.TickResult
}

func New(opts Options, clock Clock, rng rand.Source) (*Scene, error) {
	as, err := airspace.NewAirspace(opts.Bounds, opts.Airport)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if rng == nil {
		rng = rand.NewTimeSeeded()
	}

	s := &Scene{
		Airspace:    as,
		State:       gamestate.New(opts.Game),
		clock:       clock,
		baseOptions: opts.Traffic,
		rng:         rng,
	}
	s.Traffic = simulation.NewTrafficManager(opts.Traffic, rng)
	if err := s.Traffic.Initialize(as.Bounds); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s.Traffic.SetActiveRunway(as.ActiveDirection())
	return s, nil
}

func (s *Scene) Phase() Phase { return s.phase }

func (s *Scene) LastTick() simulation.TickResult { return s.lastTick }

// StageScore is the score earned since the current stage began.
func (s *Scene) StageScore() int { return s.State.Score() - s.stageStartScore }

// Start begins a new game at stage 1, scaling the spawn cadence to the
// current difficulty.
func (s *Scene) Start() {
	opts := s.baseOptions
	if opts.SpawnInterval <= 0 {
		opts.SpawnInterval = simulation.DefaultOptions().SpawnInterval
	}
	opts.SpawnInterval *= s.State.SpawnIntervalScale()

	s.Traffic = simulation.NewTrafficManager(opts, s.rng)
	if err := s.Traffic.Initialize(s.Airspace.Bounds); err != nil {
		log.Errorf("scene: %v", err)
		return
	}
	s.Traffic.SetActiveRunway(s.Airspace.ActiveDirection())

	s.State.ResetState("")
	s.State.ResetMetrics()
	s.Traffic.StartStage(1)
	s.stageStartScore = 0
	s.phase = PLAYING
	s.startedAt = s.clock.Now()
	s.endedAt = 0
	log.Infof("GAME: started at difficulty %s", s.State.Difficulty())
}

// ContinueStage moves on from a completed stage to the next one.
func (s *Scene) ContinueStage() {
	if s.phase != STAGE_COMPLETE {
		return
	}
	next := s.State.SetStage(s.State.Stage() + 1)
	s.Traffic.StartStage(next)
	s.stageStartScore = s.State.Score()
	s.phase = PLAYING
}

// ReturnToAttract drops the current game and goes back to ambient traffic.
func (s *Scene) ReturnToAttract() {
	if err := s.Traffic.Initialize(s.Airspace.Bounds); err != nil {
		log.Errorf("scene: %v", err)
	}
	s.phase = ATTRACT
}

func (s *Scene) SetPointer(p *types.Vec2) {
	if p == nil {
		s.pointer = nil
		return
	}
	pp := *p
	s.pointer = &pp
}

func (s *Scene) Pointer() *types.Vec2 { return s.pointer }

func (s *Scene) Resize(bounds types.Bounds) {
	s.Airspace.Resize(bounds)
	s.Traffic.SetBounds(s.Airspace.Bounds)
}

func (s *Scene) SetWind(deg float64) {
	if s.Airspace.Airport == nil {
		return
	}
	s.Airspace.Airport.SetWind(deg)
	s.Traffic.SetActiveRunway(s.Airspace.ActiveDirection())
}

func (s *Scene) Runway() *types.Runway {
	return s.Airspace.Runway()
}

func (s *Scene) Aircraft() []*aircraft.Aircraft {
	return s.Traffic.Snapshot()
}

// Duration is the time played so far, or the length of a finished game.
func (s *Scene) Duration() float64 {
	switch s.phase {
	case ATTRACT:
		return 0
	case GAME_OVER:
		return s.endedAt - s.startedAt
	default:
		return s.clock.Now() - s.startedAt
	}
}

// Tick advances the traffic by one step and folds the result into the game
// tally. Nothing moves while a stage summary or game over is showing.
func (s *Scene) Tick() simulation.TickResult {
	if s.phase == STAGE_COMPLETE || s.phase == GAME_OVER {
		return simulation.TickResult{StageComplete: s.phase == STAGE_COMPLETE}
	}

	ts := s.clock.Now()
	res := s.Traffic.Update(simulation.TickInput{
		Timestamp: ts,
		Pointer:   s.pointer,
		Runway:    s.Airspace.Runway(),
	})
	s.lastTick = res

	if s.phase != PLAYING {
		return res
	}

	s.State.AdjustScore(res.Score)
	s.State.IncrementFlightsHandled(res.Landed)
	s.State.RecordCollisions(res.Collided)
	s.State.RecordMissed(res.Missed)
	if res.Score > 0 {
		s.State.AddExperience(res.Score)
	}
	s.State.SetActiveFlights(len(s.Traffic.Aircrafts))

	switch {
	case s.State.Score() < 0:
		s.phase = GAME_OVER
		s.endedAt = ts
		log.Infof("GAME: over at stage %d, score %d", s.State.Stage(), s.State.Score())
	case res.StageComplete:
		s.phase = STAGE_COMPLETE
		log.Infof("GAME: stage %d cleared, score %d", s.State.Stage(), s.State.Score())
	}
	return res
}
