package conflict

import (
	"atc-radar/internal/game/aircraft"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"math"
	"testing"
)

func place(t *testing.T, x, y, dir, speed float64) *aircraft.Aircraft {
	t.Helper()
	ac, err := aircraft.New(types.Bounds{Width: 1000, Height: 600}, rand.New(1),
		aircraft.WithPosition(types.NewVec2(x, y)), aircraft.WithDirection(dir), aircraft.WithSpeed(speed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ac
}

func TestSweepMarksBothMembers(t *testing.T) {
	a := place(t, 100, 100, 0, 0)
	b := place(t, 104, 100, 0, 0)
	c := place(t, 300, 300, 0, 0)

	pairs := Sweep([]*aircraft.Aircraft{a, b, c}, 250)
	if len(pairs) != 1 || pairs[0].A != a || pairs[0].B != b {
		t.Fatalf("pairs=%v want [a b]", pairs)
	}
	for _, ac := range []*aircraft.Aircraft{a, b} {
		if !ac.IsColliding || ac.CollisionTimestamp == nil || *ac.CollisionTimestamp != 250 {
			t.Fatalf("%s not marked at 250", ac.Callsign)
		}
	}
	if c.IsColliding || c.CollisionTimestamp != nil {
		t.Fatalf("separated aircraft marked")
	}
}

func TestSweepChain(t *testing.T) {
	a := place(t, 100, 100, 0, 0)
	b := place(t, 108, 100, 0, 0)
	c := place(t, 116, 100, 0, 0)

	pairs := Sweep([]*aircraft.Aircraft{a, b, c}, 0)
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs want 2", len(pairs))
	}
	if !a.IsColliding || !b.IsColliding || !c.IsColliding {
		t.Fatalf("chain not fully marked")
	}
}

func TestCheckSeparationSymmetric(t *testing.T) {
	a := place(t, 0, 0, 0, 0)
	b := place(t, 6, 6, 0, 0)
	if CheckSeparation(a, b) != CheckSeparation(b, a) {
		t.Fatalf("CheckSeparation not symmetric")
	}
}

func TestPredictConflictHeadOn(t *testing.T) {
	a := place(t, 100, 300, 0, 1)
	b := place(t, 200, 300, math.Pi, 1)

	ok, ticks, p1, p2 := PredictConflict(a, b, 100)
	if !ok {
		t.Fatalf("head-on conflict not predicted")
	}
	// Closing at 2 per tick from 100 apart, inside 10 after 46 ticks.
	if ticks != 46 {
		t.Fatalf("ticks=%d want 46", ticks)
	}
	if p1.DistanceTo(p2) >= 10 {
		t.Fatalf("projected positions %v %v not in conflict", p1, p2)
	}

	if ok, _, _, _ := PredictConflict(a, b, 10); ok {
		t.Fatalf("conflict predicted inside a too short window")
	}
}

func TestPredictAllSkipsCurrentCollisions(t *testing.T) {
	a := place(t, 100, 300, 0, 1)
	b := place(t, 200, 300, math.Pi, 1)
	c := place(t, 500, 100, 0, 0)
	d := place(t, 503, 100, 0, 0)

	pairs := PredictAll([]*aircraft.Aircraft{a, b, c, d}, 100)
	if len(pairs) != 1 || pairs[0].A != a || pairs[0].B != b {
		t.Fatalf("pairs=%v want only the head-on pair", pairs)
	}
}

func TestPredictConflictIgnoresTouchedDown(t *testing.T) {
	a := place(t, 100, 300, 0, 1)
	b := place(t, 105, 300, 0, 0)
	b.TouchedDown = true
	if ok, _, _, _ := PredictConflict(a, b, 50); ok {
		t.Fatalf("conflict predicted with an aircraft on the ground")
	}
}
