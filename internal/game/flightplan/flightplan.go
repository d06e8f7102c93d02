package flightplan

import "atc-radar/pkg/types"

type Edge int

const (
	TOP Edge = iota
	RIGHT
	BOTTOM
	LEFT
)

var EdgeStringMap = map[Edge]string{
	TOP:    "TOP",
	RIGHT:  "RIGHT",
	BOTTOM: "BOTTOM",
	LEFT:   "LEFT",
}

// FlightPlan is the approach an inbound aircraft is spawned with: where it
// enters the scope and what it initially points at.
type FlightPlan struct {
	Callsign     types.Callsign
	AircraftType string
	Edge         Edge
	Entry        types.Vec2
	Target       types.Vec2
	Speed        float64
	Altitude     float64
}

// Direction is the initial heading from entry to target, in radians.
func (fp FlightPlan) Direction() float64 {
	return fp.Entry.AngleTo(fp.Target)
}

// EntryPoint places a point on edge at fraction t (0..1) along it, offset
// distance units outside the bounds.
func EntryPoint(bounds types.Bounds, edge Edge, t, offset float64) types.Vec2 {
	switch edge {
	case TOP:
		return types.NewVec2(t*bounds.Width, -offset)
	case RIGHT:
		return types.NewVec2(bounds.Width+offset, t*bounds.Height)
	case BOTTOM:
		return types.NewVec2(t*bounds.Width, bounds.Height+offset)
	default:
		return types.NewVec2(-offset, t*bounds.Height)
	}
}
