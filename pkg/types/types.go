package types

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidBounds = errors.New("invalid bounds")

type Callsign string

type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the math-convention angle (radians, 0 = +x) from v1 towards v2.
func (v1 Vec2) AngleTo(v2 Vec2) float64 {
	return math.Atan2(v2.Y-v1.Y, v2.X-v1.X)
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Bounds is the play area in canvas pixels. It is passed by value every
// tick; nothing should hold on to an old copy.
type Bounds struct {
	Width  float64
	Height float64
}

func NewBounds(width, height float64) (Bounds, error) {
	b := Bounds{Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

func (b Bounds) Validate() error {
	if !isFinite(b.Width) || !isFinite(b.Height) || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

func (b Bounds) Center() Vec2 {
	return Vec2{b.Width / 2, b.Height / 2}
}

func (b Bounds) ShortSide() float64 {
	return math.Min(b.Width, b.Height)
}

// Contains reports whether p lies inside the rectangle grown by margin on
// every side.
func (b Bounds) Contains(p Vec2, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin &&
		p.Y >= -margin && p.Y <= b.Height+margin
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
