package simulation

import (
	"atc-radar/internal/game/aircraft"
	"atc-radar/pkg/rand"
	"atc-radar/pkg/types"
	"math"
	"testing"
)

var testBounds = types.Bounds{Width: 1000, Height: 600}

func testRunway() *types.Runway {
	return &types.Runway{CenterX: 500, CenterY: 300, HalfLength: 100, HalfWidth: 10}
}

func newManager(t *testing.T, opts Options) *TrafficManager {
	t.Helper()
	tm := NewTrafficManager(opts, rand.New(11))
	if err := tm.Initialize(testBounds); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return tm
}

func inject(t *testing.T, tm *TrafficManager, cs types.Callsign, x, y, dir, speed float64) *aircraft.Aircraft {
	t.Helper()
	ac, err := aircraft.New(tm.Bounds(), rand.New(1),
		aircraft.WithCallsign(cs), aircraft.WithPosition(types.NewVec2(x, y)),
		aircraft.WithDirection(dir), aircraft.WithSpeed(speed))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tm.Aircrafts = append(tm.Aircrafts, ac)
	return ac
}

func find(tm *TrafficManager, cs types.Callsign) *aircraft.Aircraft {
	for _, ac := range tm.Aircrafts {
		if ac.Callsign == cs {
			return ac
		}
	}
	return nil
}

func TestInitializeRejectsInvalidBounds(t *testing.T) {
	tm := NewTrafficManager(DefaultOptions(), rand.New(1))
	if err := tm.Initialize(types.Bounds{Width: -1, Height: 10}); err == nil {
		t.Fatalf("expected error for negative width")
	}
}

func TestStageAircraftLimit(t *testing.T) {
	tm := NewTrafficManager(Options{StageBaseAircraft: 5, StageAircraftStep: 3}, rand.New(1))
	for n, want := range map[int]int{0: 5, 1: 5, 2: 8, 4: 14} {
		if got := tm.StageAircraftLimit(n); got != want {
			t.Fatalf("StageAircraftLimit(%d)=%d want %d", n, got, want)
		}
	}
}

func TestAttractModeFillsToMax(t *testing.T) {
	tm := newManager(t, Options{MaxAircraft: 3, SpawnInterval: 10})
	for ts := 0.0; ts <= 1000; ts += 10 {
		res := tm.Update(TickInput{Timestamp: ts})
		if res.Score != 0 {
			t.Fatalf("ts=%v: attract mode scored %d", ts, res.Score)
		}
		if len(tm.Aircrafts) > 3 {
			t.Fatalf("ts=%v: %d aircraft exceeds max", ts, len(tm.Aircrafts))
		}
	}
	if len(tm.Aircrafts) != 3 {
		t.Fatalf("got %d aircraft want 3", len(tm.Aircrafts))
	}
	if tm.Stage() != 0 || tm.StageComplete() {
		t.Fatalf("attract mode reported stage %d complete=%v", tm.Stage(), tm.StageComplete())
	}
}

func TestSpawnWaitsForInterval(t *testing.T) {
	tm := newManager(t, Options{MaxAircraft: 5, SpawnInterval: 3000})
	tm.Update(TickInput{Timestamp: 1000})
	tm.Update(TickInput{Timestamp: 3999})
	if len(tm.Aircrafts) != 0 {
		t.Fatalf("spawned before the interval elapsed")
	}
	tm.Update(TickInput{Timestamp: 4000})
	if len(tm.Aircrafts) != 1 {
		t.Fatalf("got %d aircraft want 1", len(tm.Aircrafts))
	}
}

func TestStageSpawnsExactlyLimitThenCompletes(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 100, StageBaseAircraft: 5, StageAircraftStep: 3})
	tm.StartStage(2)
	if tm.StageLimit() != 8 {
		t.Fatalf("limit=%d want 8", tm.StageLimit())
	}

	ts := 0.0
	for ; ts <= 2000; ts += 100 {
		res := tm.Update(TickInput{Timestamp: ts})
		if tm.SpawnedInStage() > 8 {
			t.Fatalf("spawned %d, over the limit", tm.SpawnedInStage())
		}
		if res.StageComplete {
			t.Fatalf("stage complete with %d aircraft live", len(tm.Aircrafts))
		}
	}
	if tm.SpawnedInStage() != 8 {
		t.Fatalf("spawned %d want 8", tm.SpawnedInStage())
	}

	tm.Aircrafts = nil
	res := tm.Update(TickInput{Timestamp: ts})
	if !res.StageComplete || !tm.StageComplete() {
		t.Fatalf("stage not complete once the sky is empty")
	}
	if tm.SpawnedInStage() != 8 {
		t.Fatalf("spawned after completion: %d", tm.SpawnedInStage())
	}
}

func TestStageSpawnsEnterFromEdges(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 10, StageBaseAircraft: 20})
	tm.StartStage(1)
	for ts := 0.0; ts <= 210; ts += 10 {
		tm.Update(TickInput{Timestamp: ts, Runway: testRunway()})
	}
	if len(tm.Aircrafts) == 0 {
		t.Fatalf("no aircraft spawned")
	}
	for _, ac := range tm.Aircrafts {
		if testBounds.Contains(ac.Position, SPAWN_OFFSET-10) {
			t.Fatalf("%s spawned inside the scope at %v", ac.Callsign, ac.Position)
		}
	}
}

func TestMissPenalizedOnce(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 1e9})
	tm.StartStage(1)
	inject(t, tm, "SP-MIS", -99, 300, math.Pi, 5)

	res := tm.Update(TickInput{Timestamp: 0})
	if res.Missed != 1 || res.Score != -MISSED_PENALTY {
		t.Fatalf("res=%+v want one miss for -%d", res, MISSED_PENALTY)
	}
	if find(tm, "SP-MIS") != nil {
		t.Fatalf("missed aircraft not removed")
	}

	res = tm.Update(TickInput{Timestamp: 16})
	if res.Missed != 0 || res.Score != 0 {
		t.Fatalf("miss counted again: %+v", res)
	}
}

func TestLandingScoredInStage(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 1e9})
	tm.StartStage(1)
	tm.SetActiveRunway(types.Runway27)
	inject(t, tm, "SP-LND", 650, 300, math.Pi, 1)

	total := TickResult{}
	for i := 1; i <= 50; i++ {
		res := tm.Update(TickInput{Timestamp: float64(i) * 16, Runway: testRunway()})
		total.Landed += res.Landed
		total.Score += res.Score
	}
	if total.Landed != 1 || total.Score != 40 {
		t.Fatalf("landed=%d score=%d want 1 and 40", total.Landed, total.Score)
	}

	ac := find(tm, "SP-LND")
	if ac == nil || !ac.TouchedDown {
		t.Fatalf("aircraft not rolling out")
	}
	// Touchdown is only scored once.
	res := tm.Update(TickInput{Timestamp: 51 * 16, Runway: testRunway()})
	if res.Landed != 0 || res.Score != 0 {
		t.Fatalf("touchdown scored twice: %+v", res)
	}
}

func TestNoLandingWithoutRunway(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 1e9})
	tm.StartStage(1)
	inject(t, tm, "SP-NRW", 650, 300, math.Pi, 1)
	for i := 1; i <= 60; i++ {
		if res := tm.Update(TickInput{Timestamp: float64(i)}); res.Landed != 0 {
			t.Fatalf("landed with no runway")
		}
	}
	if tm.RunwayActive() {
		t.Fatalf("runway active without one supplied")
	}
}

func TestCollisionRemovedAfterTimeout(t *testing.T) {
	tm := newManager(t, Options{MaxAircraft: 2, SpawnInterval: 3000})
	inject(t, tm, "SP-AAA", 400, 200, 0, 0)
	inject(t, tm, "SP-BBB", 404, 200, 0, 0)

	tm.Update(TickInput{Timestamp: 0})
	res := tm.Update(TickInput{Timestamp: 4000})
	if res.Collided != 0 || len(tm.Aircrafts) != 2 {
		t.Fatalf("removed before timeout: %+v", res)
	}
	res = tm.Update(TickInput{Timestamp: 5000})
	if res.Collided != 0 {
		t.Fatalf("removed at exactly the timeout")
	}
	res = tm.Update(TickInput{Timestamp: 5001})
	if res.Collided != 2 {
		t.Fatalf("collided=%d want 2", res.Collided)
	}
	if find(tm, "SP-AAA") != nil || find(tm, "SP-BBB") != nil {
		t.Fatalf("colliding aircraft still present")
	}
	if res.Score != 0 {
		t.Fatalf("attract mode collision scored %d", res.Score)
	}
}

func TestSeparatingResetsCollisionClock(t *testing.T) {
	tm := newManager(t, Options{MaxAircraft: 2, SpawnInterval: 1e9})
	a := inject(t, tm, "SP-AAA", 400, 200, 0, 0)
	inject(t, tm, "SP-BBB", 404, 200, 0, 0)

	tm.Update(TickInput{Timestamp: 0})
	tm.Update(TickInput{Timestamp: 4000})

	a.Position = types.NewVec2(300, 200)
	tm.Update(TickInput{Timestamp: 4100})
	if a.IsColliding {
		t.Fatalf("still colliding after separation")
	}

	a.Position = types.NewVec2(400, 200)
	tm.Update(TickInput{Timestamp: 6000})
	res := tm.Update(TickInput{Timestamp: 10000})
	if res.Collided != 0 || len(tm.Aircrafts) != 2 {
		t.Fatalf("removed using the old collision start: %+v", res)
	}
	if *a.CollisionTimestamp != 6000 {
		t.Fatalf("collision start=%v want 6000", *a.CollisionTimestamp)
	}
	res = tm.Update(TickInput{Timestamp: 11001})
	if res.Collided != 2 {
		t.Fatalf("collided=%d want 2", res.Collided)
	}
}

func TestNonFiniteTimestampSkipsTick(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 1e9})
	ac := inject(t, tm, "SP-NAN", 100, 100, 0, 1)

	for _, ts := range []float64{math.NaN(), math.Inf(1)} {
		res := tm.Update(TickInput{Timestamp: ts})
		if res != (TickResult{}) {
			t.Fatalf("ts=%v: res=%+v", ts, res)
		}
	}
	if ac.Position != types.NewVec2(100, 100) {
		t.Fatalf("aircraft moved on a skipped tick: %v", ac.Position)
	}
}

func TestCallsignsUnique(t *testing.T) {
	tm := newManager(t, Options{MaxAircraft: 30, SpawnInterval: 1})
	for ts := 0.0; ts <= 40; ts++ {
		tm.Update(TickInput{Timestamp: ts})
	}
	seen := map[types.Callsign]bool{}
	for _, ac := range tm.Aircrafts {
		if seen[ac.Callsign] {
			t.Fatalf("duplicate callsign %s", ac.Callsign)
		}
		seen[ac.Callsign] = true
	}
}

func TestSetActiveRunwayIgnoresInvalid(t *testing.T) {
	tm := newManager(t, DefaultOptions())
	tm.SetActiveRunway(types.Runway09)
	tm.SetActiveRunway("36")
	if tm.ActiveDirection() != types.Runway09 {
		t.Fatalf("active=%s want 09", tm.ActiveDirection())
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	tm := newManager(t, Options{SpawnInterval: 1e9})
	ac := inject(t, tm, "SP-SNP", 100, 100, 0, 1)
	snap := tm.Snapshot()
	snap[0].Position.X = 999
	if ac.Position.X != 100 {
		t.Fatalf("snapshot shares aircraft with the manager")
	}
}

func TestRadioLogBounded(t *testing.T) {
	tm := newManager(t, Options{RadioLogSize: 2})
	tm.AddRadioMessage(1, "SP-AAA", "one", false)
	tm.AddRadioMessage(2, "SP-AAA", "two", false)
	tm.AddRadioMessage(3, "SP-AAA", "three", true)

	if len(tm.RadioLog) != 2 || tm.RadioLog[0].Message != "two" {
		t.Fatalf("log=%+v", tm.RadioLog)
	}
	recent := tm.RecentRadio(5)
	if len(recent) != 2 || recent[1].Message != "three" || !recent[1].IsUrgent {
		t.Fatalf("recent=%+v", recent)
	}
	if tm.RecentRadio(0) != nil {
		t.Fatalf("RecentRadio(0) not nil")
	}
}
