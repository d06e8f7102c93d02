package rand

import (
	"time"

	"github.com/MichaelTJones/pcg"
)

// Source is the random number source consumed by the simulation. Tests
// supply their own implementations to get deterministic sequences.
type Source interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// Intn returns a value in [0,n).
	Intn(n int) int
}

type Rand struct {
	r *pcg.PCG32
}

func New(seed int64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

// NewTimeSeeded returns a Rand seeded from the wall clock, for interactive
// play.
func NewTimeSeeded() *Rand {
	return New(time.Now().UnixNano())
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.r.Bounded(uint32(n)))
}

func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

// Uniform returns a value uniformly distributed in [lo,hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// SampleSlice uniformly randomly samples an element of a non-empty slice.
func SampleSlice[T any](src Source, slice []T) T {
	return slice[src.Intn(len(slice))]
}
