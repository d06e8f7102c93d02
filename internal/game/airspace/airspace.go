package airspace

import (
	"atc-radar/pkg/types"

	"github.com/labstack/gommon/log"
)

// Airspace is the scope the traffic flies in: its current size and the
// airport whose runway is in use.
type Airspace struct {
	Bounds  types.Bounds
	Airport *Airport

	runwayOpen bool
}

func NewAirspace(bounds types.Bounds, airport *Airport) (*Airspace, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &Airspace{
		Bounds:     bounds,
		Airport:    airport,
		runwayOpen: airport != nil,
	}, nil
}

// Resize adopts new scope dimensions. Invalid sizes are ignored.
func (as *Airspace) Resize(bounds types.Bounds) {
	if err := bounds.Validate(); err != nil {
		log.Warnf("airspace: ignoring resize: %v", err)
		return
	}
	as.Bounds = bounds
}

func (as *Airspace) SetRunwayOpen(open bool) {
	as.runwayOpen = open && as.Airport != nil
}

func (as *Airspace) RunwayOpen() bool {
	return as.runwayOpen
}

// Runway returns the active runway geometry, or nil when no runway is open.
func (as *Airspace) Runway() *types.Runway {
	if !as.runwayOpen {
		return nil
	}
	rwy := as.Airport.Runway(as.Bounds)
	return &rwy
}

func (as *Airspace) ActiveDirection() types.RunwayDirection {
	if as.Airport == nil {
		return types.Runway27
	}
	return as.Airport.ActiveDirection()
}

// RangeRings returns the radii of the scope's five range rings, centred on
// the middle of the scope.
func (as *Airspace) RangeRings() []float64 {
	maxRadius := as.Bounds.ShortSide() / 2
	rings := make([]float64, 0, 5)
	for i := 1; i <= 5; i++ {
		rings = append(rings, maxRadius*float64(i)/5)
	}
	return rings
}
