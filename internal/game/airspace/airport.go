package airspace

import (
	"atc-radar/pkg/types"
	"math"
)

// RunwayLayout places a runway relative to the scope. Center and length
// are fractions of the bounds; width is in pixels.
type RunwayLayout struct {
	CenterX float64
	CenterY float64
	Length  float64
	Width   float64
}

type Airport struct {
	ID      string
	Name    string
	Layout  RunwayLayout
	WindDeg float64
}

func NewAirport(id, name string, layout RunwayLayout) *Airport {
	return &Airport{
		ID:     id,
		Name:   name,
		Layout: layout,
	}
}

// Runway returns the runway rectangle for the given scope size.
func (ap *Airport) Runway(bounds types.Bounds) types.Runway {
	return types.Runway{
		CenterX:    ap.Layout.CenterX * bounds.Width,
		CenterY:    ap.Layout.CenterY * bounds.Height,
		HalfLength: ap.Layout.Length * bounds.Width / 2,
		HalfWidth:  ap.Layout.Width / 2,
	}
}

// SetWind records the direction the wind blows from, in degrees.
func (ap *Airport) SetWind(deg float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return
	}
	ap.WindDeg = types.NormalizeHeading(deg)
}

// ActiveDirection picks the runway end that lands into the wind. A direct
// crosswind favours 27.
func (ap *Airport) ActiveDirection() types.RunwayDirection {
	d09 := types.HeadingDifference(types.Runway09.Heading(), ap.WindDeg)
	d27 := types.HeadingDifference(types.Runway27.Heading(), ap.WindDeg)
	if d09 < d27 {
		return types.Runway09
	}
	return types.Runway27
}
