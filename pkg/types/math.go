package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Degrees(r float64) float64 {
	return r * 180 / math.Pi
}

func Radians(d float64) float64 {
	return d * math.Pi / 180
}

// NormalizeHeading reduces h to [0,360).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HeadingDifference returns the minimum difference between two headings,
// always in [0,180].
func HeadingDifference(a, b float64) float64 {
	d := math.Abs(NormalizeHeading(a) - NormalizeHeading(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// CompassHeading converts a math-convention direction (radians, 0 = +x,
// y down) to a compass heading in degrees.
func CompassHeading(direction float64) float64 {
	return NormalizeHeading(Degrees(direction) + 90)
}

// AngleDifference returns the signed shortest rotation from a to b, in
// radians within [-pi,pi].
func AngleDifference(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Lerp[T constraints.Float](x, a, b T) T {
	return (1-x)*a + x*b
}
