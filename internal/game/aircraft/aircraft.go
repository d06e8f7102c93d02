package aircraft

import (
	"atc-radar/internal/game/flightplan"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"fmt"
	"math"
)

const (
	AVOIDANCE_RADIUS   = 50.0
	AVOIDANCE_STRENGTH = 0.1
	COLLISION_RADIUS   = 5.0
	COLLISION_TIMEOUT  = 5000.0
	MISSED_MARGIN      = 100.0

	ROLLOUT_DECAY = 0.95
	STOPPED_SPEED = 0.01

	HEADING_TOLERANCE_DEG = 45.0
	LANDING_BASE_POINTS   = 10.0
	MAX_DISTANCE_BONUS    = 10.0
)

type AircraftState int

const (
	AIRBORNE AircraftState = iota
	THRESHOLD_CROSSED
	TOUCHED_DOWN
	LANDED
	MISSED
)

var StateStringMap = map[AircraftState]string{
	AIRBORNE:          "AIRBORNE",
	THRESHOLD_CROSSED: "FINAL",
	TOUCHED_DOWN:      "ROLLOUT",
	LANDED:            "LANDED",
	MISSED:            "MISSED",
}

type Aircraft struct {
	Callsign  types.Callsign
	Type      string
	Position  types.Vec2
	Speed     float64
	Direction float64 // radians, 0 = +x
	Altitude  float64

	AvoidanceRadius float64
	CollisionRadius float64

	TouchedDown      bool
	Landed           bool
	CrossedThreshold bool
	Missed           bool
	// MissCounted is owned by the traffic manager so a miss is penalized once.
	MissCounted bool

	IsColliding        bool
	WasColliding       bool
	CollisionTimestamp *float64

	DistanceTraveled        float64
	LandedOnCorrectRunway   bool
	LandingHeadingDeviation float64
	TouchdownTimestamp      float64
	TouchdownOffset         float64

	Bounds types.Bounds
}

type initialState struct {
	position  *types.Vec2
	speed     *float64
	direction *float64
	altitude  *float64
	acType    *string
	callsign  *types.Callsign
}

type Option func(*initialState)

func WithPosition(p types.Vec2) Option { return func(s *initialState) { s.position = &p } }
func WithSpeed(v float64) Option       { return func(s *initialState) { s.speed = &v } }
func WithDirection(d float64) Option   { return func(s *initialState) { s.direction = &d } }
func WithAltitude(a float64) Option    { return func(s *initialState) { s.altitude = &a } }
func WithType(t string) Option         { return func(s *initialState) { s.acType = &t } }

func WithCallsign(c types.Callsign) Option {
	return func(s *initialState) { s.callsign = &c }
}

// New creates an aircraft inside bounds. Any field not given through an
// Option is drawn from src.
func New(bounds types.Bounds, src rand.Source, opts ...Option) (*Aircraft, error) {
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("aircraft: %w", err)
	}

	var init initialState
	for _, opt := range opts {
		opt(&init)
	}

	ac := &Aircraft{
		AvoidanceRadius: AVOIDANCE_RADIUS,
		CollisionRadius: COLLISION_RADIUS,
		Bounds:          bounds,
	}

	if init.position != nil {
		ac.Position = *init.position
	} else {
		ac.Position = types.NewVec2(src.Float64()*bounds.Width, src.Float64()*bounds.Height)
	}
	if init.speed != nil {
		ac.Speed = math.Max(0, *init.speed)
	} else {
		ac.Speed = rand.Uniform(src, 0.1, 0.5)
	}
	if init.direction != nil {
		ac.Direction = normalizeAngle(*init.direction)
	} else {
		ac.Direction = src.Float64() * 2 * math.Pi
	}
	if init.altitude != nil {
		ac.Altitude = *init.altitude
	} else {
		ac.Altitude = float64(100+src.Intn(151)) * 100
	}
	if init.acType != nil {
		ac.Type = *init.acType
	} else {
		ac.Type = RandomType(src)
	}
	if init.callsign != nil {
		ac.Callsign = *init.callsign
	} else {
		ac.Callsign = RandomCallsign(src)
	}

	return ac, nil
}

// NewFromPlan builds an inbound aircraft that starts at the plan's entry
// point heading for its target.
func NewFromPlan(bounds types.Bounds, src rand.Source, plan flightplan.FlightPlan) (*Aircraft, error) {
	opts := []Option{
		WithPosition(plan.Entry),
		WithDirection(plan.Direction()),
		WithSpeed(plan.Speed),
		WithAltitude(plan.Altitude),
	}
	if plan.Callsign != "" {
		opts = append(opts, WithCallsign(plan.Callsign))
	}
	if plan.AircraftType != "" {
		opts = append(opts, WithType(plan.AircraftType))
	}
	return New(bounds, src, opts...)
}

// Heading returns the compass heading in degrees.
func (ac *Aircraft) Heading() float64 {
	return types.CompassHeading(ac.Direction)
}

func (ac *Aircraft) State() AircraftState {
	switch {
	case ac.Landed:
		return LANDED
	case ac.TouchedDown:
		return TOUCHED_DOWN
	case ac.Missed:
		return MISSED
	case ac.CrossedThreshold:
		return THRESHOLD_CROSSED
	default:
		return AIRBORNE
	}
}

func (ac *Aircraft) Update(pointer *types.Vec2, bounds types.Bounds, dir types.RunwayDirection, runway *types.Runway) {
	if ac.Landed {
		return
	}
	ac.Bounds = bounds

	if ac.TouchedDown {
		ac.Speed *= ROLLOUT_DECAY
		ac.move()
		if ac.Speed < STOPPED_SPEED {
			ac.Landed = true
		}
		return
	}

	ac.avoid(pointer)

	prev := ac.Position
	ac.move()
	ac.DistanceTraveled += prev.DistanceTo(ac.Position)

	if runway != nil && !ac.CrossedThreshold && dir.Valid() && crossedThreshold(prev, ac.Position, *runway, dir) {
		ac.CrossedThreshold = true
	}

	if !ac.Bounds.Contains(ac.Position, MISSED_MARGIN) {
		ac.Missed = true
	}
}

func (ac *Aircraft) move() {
	ac.Position.X += math.Cos(ac.Direction) * ac.Speed
	ac.Position.Y += math.Sin(ac.Direction) * ac.Speed
}

// avoid turns the aircraft away from the pointer. The closer the pointer,
// the larger the share of the remaining turn taken this tick.
func (ac *Aircraft) avoid(pointer *types.Vec2) {
	if pointer == nil || !pointer.IsFinite() {
		return
	}
	distance := ac.Position.DistanceTo(*pointer)
	if distance <= 0 || distance >= ac.AvoidanceRadius {
		return
	}

	away := pointer.AngleTo(ac.Position)
	closeness := 1 - distance/ac.AvoidanceRadius
	turn := types.AngleDifference(ac.Direction, away)
	ac.Direction = normalizeAngle(ac.Direction + turn*AVOIDANCE_STRENGTH*closeness)
}

// crossedThreshold reports whether the step prev->cur passed over the
// threshold edge for dir while inside the runway's width band.
func crossedThreshold(prev, cur types.Vec2, runway types.Runway, dir types.RunwayDirection) bool {
	if !runway.InWidthBand(prev.Y, cur.Y) {
		return false
	}
	thresholdX := runway.ThresholdX(dir)
	if dir == types.Runway27 {
		return prev.X > thresholdX && cur.X <= thresholdX
	}
	return prev.X < thresholdX && cur.X >= thresholdX
}

func (ac *Aircraft) CheckCollision(other *Aircraft) bool {
	return ac.Position.DistanceTo(other.Position) < ac.CollisionRadius+other.CollisionRadius
}

// ClearCollision starts a new sweep: the current flag is remembered so
// that MarkCollision can tell a continuing collision from a new one.
func (ac *Aircraft) ClearCollision() {
	ac.WasColliding = ac.IsColliding
	ac.IsColliding = false
}

func (ac *Aircraft) MarkCollision(timestamp float64) {
	if !ac.IsColliding && (!ac.WasColliding || ac.CollisionTimestamp == nil) {
		ts := timestamp
		ac.CollisionTimestamp = &ts
	}
	ac.IsColliding = true
}

func (ac *Aircraft) ShouldRemove(timestamp float64) bool {
	if ac.Landed || ac.Missed {
		return true
	}
	if !ac.IsColliding || ac.CollisionTimestamp == nil {
		return false
	}
	return timestamp-*ac.CollisionTimestamp > COLLISION_TIMEOUT
}

func (ac *Aircraft) IsWithinRunway(runway types.Runway) bool {
	return runway.Contains(ac.Position)
}

func (ac *Aircraft) MarkLanded(timestamp float64, dir types.RunwayDirection, thresholdX float64) {
	ac.TouchedDown = true
	ac.Altitude = 0
	ac.TouchdownTimestamp = timestamp
	ac.TouchdownOffset = math.Abs(ac.Position.X - thresholdX)
	ac.LandingHeadingDeviation = types.HeadingDifference(ac.Heading(), dir.Heading())
	ac.LandedOnCorrectRunway = dir.Valid() && ac.LandingHeadingDeviation <= HEADING_TOLERANCE_DEG
}

// CalculateLandingScore returns the points for a completed touchdown, in
// [0,40]. Approaches that never crossed the threshold score nothing.
func (ac *Aircraft) CalculateLandingScore(bounds types.Bounds) int {
	if !ac.LandedOnCorrectRunway || !ac.CrossedThreshold {
		return 0
	}

	var multiplier float64
	switch dev := ac.LandingHeadingDeviation; {
	case dev <= 10:
		multiplier = 3
	case dev <= 20:
		multiplier = 2
	case dev <= HEADING_TOLERANCE_DEG:
		multiplier = 1
	default:
		return 0
	}

	short := bounds.ShortSide()
	minDistance, maxDistance := 0.3*short, 2*short
	excess := 0.0
	if maxDistance > minDistance {
		excess = types.Clamp((ac.DistanceTraveled-minDistance)/(maxDistance-minDistance), 0, 1)
	}
	bonus := MAX_DISTANCE_BONUS * (1 - excess)

	return int(math.Round(LANDING_BASE_POINTS*multiplier + bonus))
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
