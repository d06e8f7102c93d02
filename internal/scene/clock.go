package scene

import "time"

// Clock supplies tick timestamps in milliseconds. The simulation never
// reads the wall clock itself.
type Clock interface {
	Now() float64
}

type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Now() float64 {
	return float64(time.Since(c.start)) / float64(time.Millisecond)
}

// TickClock advances by a fixed step each frame, so a run is reproducible
// regardless of how long frames actually take.
type TickClock struct {
	now  float64
	step float64
}

func NewTickClock(step float64) *TickClock {
	return &TickClock{step: step}
}

func (c *TickClock) Now() float64 {
	return c.now
}

func (c *TickClock) Advance() float64 {
	c.now += c.step
	return c.now
}
