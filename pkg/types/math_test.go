package types

import (
	"math"
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
	} {
		if got := NormalizeHeading(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("NormalizeHeading(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	for _, tc := range []struct{ a, b, want float64 }{
		{10, 350, 20},
		{90, 270, 180},
		{270, 265, 5},
		{-10, 10, 20},
	} {
		if got := HeadingDifference(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("HeadingDifference(%v,%v)=%v want %v", tc.a, tc.b, got, tc.want)
		}
		if got := HeadingDifference(tc.b, tc.a); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("HeadingDifference(%v,%v)=%v want %v", tc.b, tc.a, got, tc.want)
		}
	}
}

func TestCompassHeading(t *testing.T) {
	for _, tc := range []struct{ dir, want float64 }{
		{0, 90},
		{math.Pi / 2, 180},
		{math.Pi, 270},
		{-math.Pi / 2, 0},
	} {
		if got := CompassHeading(tc.dir); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("CompassHeading(%v)=%v want %v", tc.dir, got, tc.want)
		}
	}
}

func TestAngleDifference(t *testing.T) {
	if got := AngleDifference(0, math.Pi/2); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Fatalf("AngleDifference(0,pi/2)=%v", got)
	}
	if got := AngleDifference(0.1, 2*math.Pi-0.1); math.Abs(got+0.2) > 1e-12 {
		t.Fatalf("AngleDifference across zero=%v want -0.2", got)
	}
	if got := AngleDifference(3*math.Pi/2, 0); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Fatalf("AngleDifference(3pi/2,0)=%v want pi/2", got)
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp=%v want 3", got)
	}
	if got := Clamp(-1.5, 0, 1); got != 0 {
		t.Fatalf("Clamp=%v want 0", got)
	}
	if got := Lerp(0.25, 0.0, 8.0); got != 2 {
		t.Fatalf("Lerp=%v want 2", got)
	}
}
