package conflict

import (
	"atc-radar/internal/game/aircraft"
	"atc-radar/pkg/types"
	"math"
)

// Pair is two aircraft whose collision circles overlap.
type Pair struct {
	A, B *aircraft.Aircraft
}

// CheckSeparation reports whether two aircraft are in collision. It is
// symmetric in its arguments.
func CheckSeparation(ac1, ac2 *aircraft.Aircraft) bool {
	return ac1.CheckCollision(ac2)
}

// Sweep tests every unordered pair in index order and marks both members
// of each overlapping pair as colliding at timestamp.
func Sweep(aircrafts []*aircraft.Aircraft, timestamp float64) []Pair {
	var pairs []Pair
	for i := 0; i < len(aircrafts); i++ {
		for j := i + 1; j < len(aircrafts); j++ {
			ac1 := aircrafts[i]
			ac2 := aircrafts[j]
			if CheckSeparation(ac1, ac2) {
				ac1.MarkCollision(timestamp)
				ac2.MarkCollision(timestamp)
				pairs = append(pairs, Pair{ac1, ac2})
			}
		}
	}
	return pairs
}

// PredictConflict projects both aircraft along their current heading and
// speed for ticks steps and checks whether they come within collision range
// at any step.
// Returns: (isConflict, ticksToConflict, projected1, projected2)
func PredictConflict(ac1, ac2 *aircraft.Aircraft, ticks int) (bool, int, types.Vec2, types.Vec2) {
	if ac1.TouchedDown || ac2.TouchedDown {
		return false, 0, types.Vec2{}, types.Vec2{}
	}

	// Simple linear projection; pointer avoidance can change this at any time.
	d1 := types.NewVec2(math.Cos(ac1.Direction)*ac1.Speed, math.Sin(ac1.Direction)*ac1.Speed)
	d2 := types.NewVec2(math.Cos(ac2.Direction)*ac2.Speed, math.Sin(ac2.Direction)*ac2.Speed)
	minDist := ac1.CollisionRadius + ac2.CollisionRadius

	for t := 0; t <= ticks; t++ {
		p1 := types.NewVec2(ac1.Position.X+d1.X*float64(t), ac1.Position.Y+d1.Y*float64(t))
		p2 := types.NewVec2(ac2.Position.X+d2.X*float64(t), ac2.Position.Y+d2.Y*float64(t))
		if p1.DistanceTo(p2) < minDist {
			return true, t, p1, p2
		}
	}
	return false, 0, types.Vec2{}, types.Vec2{}
}

// PredictAll returns the pairs predicted to collide within ticks steps,
// skipping pairs that already overlap.
func PredictAll(aircrafts []*aircraft.Aircraft, ticks int) []Pair {
	var pairs []Pair
	for i := 0; i < len(aircrafts); i++ {
		for j := i + 1; j < len(aircrafts); j++ {
			if CheckSeparation(aircrafts[i], aircrafts[j]) {
				continue
			}
			if ok, _, _, _ := PredictConflict(aircrafts[i], aircrafts[j], ticks); ok {
				pairs = append(pairs, Pair{aircrafts[i], aircrafts[j]})
			}
		}
	}
	return pairs
}
