package airspace

import (
	"atc-radar/pkg/types"
	"testing"
)

func testAirport() *Airport {
	return NewAirport("EPWA", "Test", RunwayLayout{CenterX: 0.5, CenterY: 0.5, Length: 0.2, Width: 20})
}

func TestRunwayScalesWithBounds(t *testing.T) {
	ap := testAirport()
	rwy := ap.Runway(types.Bounds{Width: 1000, Height: 600})
	want := types.Runway{CenterX: 500, CenterY: 300, HalfLength: 100, HalfWidth: 10}
	if rwy != want {
		t.Fatalf("runway=%+v want %+v", rwy, want)
	}
}

func TestActiveDirectionFollowsWind(t *testing.T) {
	ap := testAirport()
	for _, tc := range []struct {
		wind float64
		want types.RunwayDirection
	}{
		{270, types.Runway27},
		{90, types.Runway09},
		{60, types.Runway09},
		{300, types.Runway27},
		{0, types.Runway27},
		{180, types.Runway27},
	} {
		ap.SetWind(tc.wind)
		if got := ap.ActiveDirection(); got != tc.want {
			t.Fatalf("wind %v: active=%s want %s", tc.wind, got, tc.want)
		}
	}

	ap.SetWind(-90)
	if ap.WindDeg != 270 {
		t.Fatalf("wind not normalized: %v", ap.WindDeg)
	}
}

func TestAirspaceRunwayOpen(t *testing.T) {
	as, err := NewAirspace(types.Bounds{Width: 1000, Height: 600}, testAirport())
	if err != nil {
		t.Fatalf("NewAirspace: %v", err)
	}
	if as.Runway() == nil {
		t.Fatalf("runway closed by default")
	}
	as.SetRunwayOpen(false)
	if as.Runway() != nil || as.RunwayOpen() {
		t.Fatalf("closed runway still returned")
	}

	bare, err := NewAirspace(types.Bounds{Width: 1000, Height: 600}, nil)
	if err != nil {
		t.Fatalf("NewAirspace: %v", err)
	}
	bare.SetRunwayOpen(true)
	if bare.Runway() != nil {
		t.Fatalf("runway without an airport")
	}
	if bare.ActiveDirection() != types.Runway27 {
		t.Fatalf("default direction=%s want 27", bare.ActiveDirection())
	}
}

func TestResizeIgnoresInvalid(t *testing.T) {
	as, err := NewAirspace(types.Bounds{Width: 1000, Height: 600}, testAirport())
	if err != nil {
		t.Fatalf("NewAirspace: %v", err)
	}
	as.Resize(types.Bounds{Width: 0, Height: 600})
	if as.Bounds.Width != 1000 {
		t.Fatalf("invalid resize applied: %+v", as.Bounds)
	}
	as.Resize(types.Bounds{Width: 500, Height: 400})
	if rwy := as.Runway(); rwy.CenterX != 250 || rwy.CenterY != 200 {
		t.Fatalf("runway did not follow resize: %+v", rwy)
	}
}

func TestRangeRings(t *testing.T) {
	as, err := NewAirspace(types.Bounds{Width: 1000, Height: 600}, nil)
	if err != nil {
		t.Fatalf("NewAirspace: %v", err)
	}
	rings := as.RangeRings()
	if len(rings) != 5 || rings[0] != 60 || rings[4] != 300 {
		t.Fatalf("rings=%v", rings)
	}
}
