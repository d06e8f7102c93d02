package types

import "math"

type RunwayDirection string

const (
	Runway09 RunwayDirection = "09"
	Runway27 RunwayDirection = "27"
)

// Heading returns the landing heading in compass degrees.
func (d RunwayDirection) Heading() float64 {
	if d == Runway09 {
		return 90
	}
	return 270
}

func (d RunwayDirection) Valid() bool {
	return d == Runway09 || d == Runway27
}

func (d RunwayDirection) Opposite() RunwayDirection {
	if d == Runway09 {
		return Runway27
	}
	return Runway09
}

// Runway is an axis-aligned landing rectangle. The long axis runs along x.
type Runway struct {
	CenterX    float64
	CenterY    float64
	HalfLength float64
	HalfWidth  float64
}

// ThresholdX is the x coordinate of the short edge an aircraft landing in
// direction d crosses first. Landing on 27 means flying west, so the
// threshold is the east edge.
func (r Runway) ThresholdX(d RunwayDirection) float64 {
	if d == Runway09 {
		return r.CenterX - r.HalfLength
	}
	return r.CenterX + r.HalfLength
}

func (r Runway) Threshold(d RunwayDirection) Vec2 {
	return Vec2{r.ThresholdX(d), r.CenterY}
}

func (r Runway) Contains(p Vec2) bool {
	return math.Abs(p.X-r.CenterX) <= r.HalfLength && math.Abs(p.Y-r.CenterY) <= r.HalfWidth
}

// InWidthBand reports whether the closed y interval [y0,y1] (in any order)
// overlaps the runway's width band.
func (r Runway) InWidthBand(y0, y1 float64) bool {
	lo, hi := math.Min(y0, y1), math.Max(y0, y1)
	return hi >= r.CenterY-r.HalfWidth && lo <= r.CenterY+r.HalfWidth
}
