package simulation

import (
	"atc-radar/internal/game/aircraft"
	"atc-radar/internal/game/conflict"
	"atc-radar/internal/game/flightplan"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"fmt"
	"math"
	"slices"

	"github.com/brunoga/deep"
	"github.com/labstack/gommon/log"
)

const (
	SPAWN_OFFSET   = 50.0
	MISSED_PENALTY = 20
)

type Options struct {
	MaxAircraft       int     // live cap for ambient traffic
	SpawnInterval     float64 // time units between spawns
	StageBaseAircraft int     // spawns admitted in stage 1
	StageAircraftStep int     // extra spawns per later stage
	RadioLogSize      int
}

func DefaultOptions() Options {
	return Options{
		MaxAircraft:       10,
		SpawnInterval:     3000,
		StageBaseAircraft: 5,
		StageAircraftStep: 3,
		RadioLogSize:      50,
	}
}

type TickInput struct {
	Timestamp float64
	Pointer   *types.Vec2
	Runway    *types.Runway
}

type TickResult struct {
	Landed        int
	Score         int
	Missed        int
	Collided      int
	StageComplete bool
}

// TrafficManager owns the live aircraft and advances them one tick at a
// time. Stage 0 is ambient traffic: randomized aircraft, nothing scored.
type TrafficManager struct {
	Aircrafts []*aircraft.Aircraft
	RadioLog  []RadioMessage

	bounds          types.Bounds
	runway          *types.Runway
	activeDirection types.RunwayDirection
	rng             rand.Source

	maxAircraft       int
	spawnInterval     float64
	stageBaseAircraft int
	stageAircraftStep int
	maxRadioLogSize   int

	lastSpawnTime      float64
	spawnTimerPending  bool
	spawnedInStage     int
	stageAircraftLimit int
	currentStage       int
	stageComplete      bool
}

func NewTrafficManager(opts Options, rng rand.Source) *TrafficManager {
	def := DefaultOptions()
	if opts.MaxAircraft <= 0 {
		opts.MaxAircraft = def.MaxAircraft
	}
	if opts.SpawnInterval <= 0 || math.IsNaN(opts.SpawnInterval) || math.IsInf(opts.SpawnInterval, 0) {
		opts.SpawnInterval = def.SpawnInterval
	}
	if opts.StageBaseAircraft <= 0 {
		opts.StageBaseAircraft = def.StageBaseAircraft
	}
	if opts.StageAircraftStep <= 0 {
		opts.StageAircraftStep = def.StageAircraftStep
	}
	if opts.RadioLogSize <= 0 {
		opts.RadioLogSize = def.RadioLogSize
	}
	if rng == nil {
		rng = rand.NewTimeSeeded()
	}

	return &TrafficManager{
		rng:               rng,
		activeDirection:   types.Runway27,
		maxAircraft:       opts.MaxAircraft,
		spawnInterval:     opts.SpawnInterval,
		stageBaseAircraft: opts.StageBaseAircraft,
		stageAircraftStep: opts.StageAircraftStep,
		maxRadioLogSize:   opts.RadioLogSize,
		spawnTimerPending: true,
	}
}

// Initialize clears all traffic and returns to ambient mode. The spawn
// timer starts from the timestamp of the next Update.
func (tm *TrafficManager) Initialize(bounds types.Bounds) error {
	if err := bounds.Validate(); err != nil {
		return fmt.Errorf("traffic manager: %w", err)
	}
	tm.bounds = bounds
	tm.Aircrafts = nil
	tm.RadioLog = nil
	tm.spawnedInStage = 0
	tm.currentStage = 0
	tm.stageAircraftLimit = 0
	tm.stageComplete = false
	tm.spawnTimerPending = true
	return nil
}

// StageAircraftLimit is the number of aircraft spawned over the course of
// stage n.
func (tm *TrafficManager) StageAircraftLimit(n int) int {
	if n < 1 {
		n = 1
	}
	return tm.stageBaseAircraft + (n-1)*tm.stageAircraftStep
}

func (tm *TrafficManager) StartStage(n int) {
	if n < 1 {
		n = 1
	}
	tm.currentStage = n
	tm.stageAircraftLimit = tm.StageAircraftLimit(n)
	tm.spawnedInStage = 0
	tm.Aircrafts = nil
	tm.stageComplete = false
	tm.spawnTimerPending = true
	log.Infof("STAGE: starting stage %d with %d aircraft", n, tm.stageAircraftLimit)
}

func (tm *TrafficManager) SetActiveRunway(dir types.RunwayDirection) {
	if !dir.Valid() {
		log.Warnf("traffic manager: ignoring runway direction %q", dir)
		return
	}
	if dir != tm.activeDirection {
		log.Infof("RUNWAY: active runway now %s", dir)
	}
	tm.activeDirection = dir
}

func (tm *TrafficManager) SetBounds(bounds types.Bounds) {
	if err := bounds.Validate(); err != nil {
		log.Warnf("traffic manager: keeping %gx%g: %v", tm.bounds.Width, tm.bounds.Height, err)
		return
	}
	tm.bounds = bounds
}

func (tm *TrafficManager) Bounds() types.Bounds                   { return tm.bounds }
func (tm *TrafficManager) Runway() *types.Runway                  { return tm.runway }
func (tm *TrafficManager) RunwayActive() bool                     { return tm.runway != nil }
func (tm *TrafficManager) ActiveDirection() types.RunwayDirection { return tm.activeDirection }
func (tm *TrafficManager) Stage() int                             { return tm.currentStage }
func (tm *TrafficManager) StageLimit() int                        { return tm.stageAircraftLimit }
func (tm *TrafficManager) SpawnedInStage() int                    { return tm.spawnedInStage }
func (tm *TrafficManager) StageComplete() bool                    { return tm.stageComplete }
func (tm *TrafficManager) SpawnInterval() float64                 { return tm.spawnInterval }

// Snapshot returns a deep copy of the live aircraft for rendering.
func (tm *TrafficManager) Snapshot() []*aircraft.Aircraft {
	return deep.MustCopy(tm.Aircrafts)
}

func (tm *TrafficManager) Update(in TickInput) TickResult {
	var res TickResult
	ts := in.Timestamp
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		res.StageComplete = tm.stageComplete
		return res
	}
	if tm.spawnTimerPending {
		tm.lastSpawnTime = ts
		tm.spawnTimerPending = false
	}

	tm.runway = in.Runway

	tm.maybeSpawn(ts)

	if tm.currentStage > 0 && !tm.stageComplete &&
		tm.spawnedInStage >= tm.stageAircraftLimit && len(tm.Aircrafts) == 0 {
		tm.stageComplete = true
		log.Infof("STAGE: stage %d complete", tm.currentStage)
	}

	for _, ac := range tm.Aircrafts {
		ac.Update(in.Pointer, tm.bounds, tm.activeDirection, tm.runway)
		ac.ClearCollision()
	}

	for _, p := range conflict.Sweep(tm.Aircrafts, ts) {
		if !p.A.WasColliding || !p.B.WasColliding {
			log.Printf("COLLISION: %s and %s", p.A.Callsign, p.B.Callsign)
			tm.AddRadioMessage(ts, p.A.Callsign, fmt.Sprintf("Traffic alert, %s", p.B.Callsign), true)
		}
	}

	for _, ac := range tm.Aircrafts {
		if ac.Missed && !ac.MissCounted {
			ac.MissCounted = true
			res.Missed++
			res.Score -= MISSED_PENALTY
			log.Printf("MISSED: %s left the scope unlanded", ac.Callsign)
			tm.AddRadioMessage(ts, ac.Callsign, "Leaving your airspace, no landing", false)
		}
	}

	if tm.runway != nil {
		for _, ac := range tm.Aircrafts {
			if ac.TouchedDown || !ac.IsWithinRunway(*tm.runway) {
				continue
			}
			ac.MarkLanded(ts, tm.activeDirection, tm.runway.ThresholdX(tm.activeDirection))
			points := ac.CalculateLandingScore(tm.bounds)
			res.Landed++
			res.Score += points
			log.Printf("LANDED: %s on %s, heading %.0f, %d points", ac.Callsign, tm.activeDirection, ac.Heading(), points)
			tm.AddRadioMessage(ts, ac.Callsign, fmt.Sprintf("Touchdown runway %s", tm.activeDirection), false)
		}
	}

	tm.Aircrafts = slices.DeleteFunc(tm.Aircrafts, func(ac *aircraft.Aircraft) bool {
		if !ac.ShouldRemove(ts) {
			return false
		}
		if !ac.Landed && !ac.Missed {
			res.Collided++
			log.Printf("COLLISION: %s removed after sustained conflict", ac.Callsign)
		}
		return true
	})

	if tm.currentStage == 0 {
		res.Score = 0
	}
	res.StageComplete = tm.stageComplete
	return res
}

func (tm *TrafficManager) maybeSpawn(ts float64) {
	if ts-tm.lastSpawnTime < tm.spawnInterval {
		return
	}

	var ac *aircraft.Aircraft
	var err error
	if tm.currentStage == 0 {
		if len(tm.Aircrafts) >= tm.maxAircraft {
			return
		}
		ac, err = aircraft.New(tm.bounds, tm.rng, aircraft.WithCallsign(tm.uniqueCallsign()))
	} else {
		if tm.spawnedInStage >= tm.stageAircraftLimit {
			return
		}
		plan := tm.planApproach()
		ac, err = aircraft.NewFromPlan(tm.bounds, tm.rng, plan)
		if err == nil {
			tm.spawnedInStage++
		}
	}
	if err != nil {
		log.Errorf("SPAWN: %v", err)
		return
	}

	tm.lastSpawnTime = ts
	tm.Aircrafts = append(tm.Aircrafts, ac)
	log.Debugf("SPAWN: %s (%s) at %.0f,%.0f heading %.0f, speed %.2f, altitude %.0f",
		ac.Callsign, ac.Type, ac.Position.X, ac.Position.Y, ac.Heading(), ac.Speed, ac.Altitude)
}

// planApproach draws an inbound flight entering from a random edge and
// aimed at the active threshold, or the scope centre with no runway.
func (tm *TrafficManager) planApproach() flightplan.FlightPlan {
	edge := flightplan.Edge(tm.rng.Intn(4))
	entry := flightplan.EntryPoint(tm.bounds, edge, tm.rng.Float64(), SPAWN_OFFSET)

	target := tm.bounds.Center()
	if tm.runway != nil {
		target = tm.runway.Threshold(tm.activeDirection)
	}

	return flightplan.FlightPlan{
		Callsign:     tm.uniqueCallsign(),
		AircraftType: aircraft.RandomType(tm.rng),
		Edge:         edge,
		Entry:        entry,
		Target:       target,
		Speed:        rand.Uniform(tm.rng, 0.15, 0.25),
		Altitude:     rand.Uniform(tm.rng, 6000, 9000),
	}
}

func (tm *TrafficManager) uniqueCallsign() types.Callsign {
	cs := aircraft.RandomCallsign(tm.rng)
	for retries := 8; retries > 0 && tm.hasCallsign(cs); retries-- {
		cs = aircraft.RandomCallsign(tm.rng)
	}
	return cs
}

func (tm *TrafficManager) hasCallsign(cs types.Callsign) bool {
	return slices.ContainsFunc(tm.Aircrafts, func(ac *aircraft.Aircraft) bool { return ac.Callsign == cs })
}
