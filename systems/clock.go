// Package systems provides the pure simulation logic: the day/night
// clock, movement math, trait mutation, and spawn placement.
package systems

// Timer accumulates simulated seconds and fires once per period.
type Timer struct {
	Elapsed float32
	Period  float32
}

// Tick advances the timer and reports whether it completed. A completed
// timer keeps the overshoot so long frames do not drift the cycle.
func (t *Timer) Tick(dt float32) bool {
	t.Elapsed += dt
	if t.Elapsed >= t.Period {
		t.Elapsed -= t.Period
		return true
	}
	return false
}

// Restart zeroes the accumulated time.
func (t *Timer) Restart() {
	t.Elapsed = 0
}

// Clock tracks elapsed simulated time and the day/night cycle.
//
// Two cooperating timers drive the cycle: the day timer runs only while it
// is day and fires at dusk; the night timer runs unconditionally with a
// period of one full day+night and fires at dawn, restarting both.
type Clock struct {
	Elapsed float64 // Total simulated seconds
	Night   bool

	day   Timer
	night Timer
}

// NewClock creates a clock with the given phase lengths in simulated seconds.
func NewClock(dayLength, nightLength float32) *Clock {
	return &Clock{
		day:   Timer{Period: dayLength},
		night: Timer{Period: dayLength + nightLength},
	}
}

// Advance ticks both timers by dt simulated seconds and reports boundary
// crossings. Dusk flips Night on; dawn flips it off and restarts both
// timers, so the next day begins from a clean phase.
func (c *Clock) Advance(dt float32) (dusk, dawn bool) {
	c.Elapsed += float64(dt)

	if !c.Night && c.day.Tick(dt) {
		c.Night = true
		dusk = true
	}

	if c.night.Tick(dt) {
		c.Night = false
		c.day.Restart()
		c.night.Restart()
		dawn = true
	}

	return dusk, dawn
}
