package loop

import "time"

// Tick is a scheduled tick stamped with the generation that scheduled it.
type Tick struct {
	Gen  uint64
	Time time.Time
}

// Clock gates message-driven ticks by generation. Every Start and Stop moves
// to a new generation, so a tick scheduled by an earlier session is rejected
// by Accept even if it is delivered after a restart.
//
// Clock is not safe for concurrent use; it belongs to the goroutine that
// processes the ticks.
type Clock struct {
	interval time.Duration
	gen      uint64
	running  bool
}

// NewClock creates a stopped clock that ticks every interval.
func NewClock(interval time.Duration) Clock {
	return Clock{interval: interval}
}

// RateInterval converts a tick rate in Hz to an interval, defaulting to 60 Hz.
func RateInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// Start begins a new generation and returns it.
func (c *Clock) Start() uint64 {
	c.gen++
	c.running = true
	return c.gen
}

// Stop cancels the current generation. Ticks already in flight are rejected.
func (c *Clock) Stop() {
	c.gen++
	c.running = false
}

// Accept reports whether t belongs to the running generation.
func (c *Clock) Accept(t Tick) bool {
	return c.running && t.Gen == c.gen
}

// Running reports whether the clock has a live generation.
func (c *Clock) Running() bool {
	return c.running
}

// Generation returns the current generation.
func (c *Clock) Generation() uint64 {
	return c.gen
}

// Interval returns the tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the interval used for subsequently scheduled ticks.
func (c *Clock) SetInterval(d time.Duration) {
	c.interval = d
}
