package sched

import (
	"math"
	"time"

	"fortio.org/safecast"
)

// Clock supplies monotonic time and blocking behavior for the tick loop.
type Clock interface {
	NowMs() uint64
	SleepUntilMs(deadlineMs uint64)
}

// RealClock reads monotonic wall time and blocks the goroutine until the
// requested deadline.
type RealClock struct {
	start time.Time
}

// NewRealClock creates a clock whose zero point is the moment of creation.
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

func (c *RealClock) NowMs() uint64 {
	if c == nil {
		return 0
	}
	elapsed := time.Since(c.start)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / time.Millisecond)
}

func (c *RealClock) SleepUntilMs(deadlineMs uint64) {
	if c == nil {
		return
	}
	now := c.NowMs()
	if deadlineMs <= now {
		return
	}
	delta := deadlineMs - now
	maxMs := uint64(math.MaxInt64 / int64(time.Millisecond))
	if delta > maxMs {
		delta = maxMs
	}
	delay, err := safecast.Conv[int64](delta)
	if err != nil {
		return
	}
	time.Sleep(time.Duration(delay) * time.Millisecond)
}

// VirtualClock advances only when asked. Tests drive it to get a
// deterministic tick sequence without real sleeping.
type VirtualClock struct {
	nowMs uint64
}

func (c *VirtualClock) NowMs() uint64 {
	if c == nil {
		return 0
	}
	return c.nowMs
}

func (c *VirtualClock) SleepUntilMs(deadlineMs uint64) {
	if c == nil {
		return
	}
	if deadlineMs > c.nowMs {
		c.nowMs = deadlineMs
	}
}

// Advance moves virtual time forward by deltaMs.
func (c *VirtualClock) Advance(deltaMs uint64) {
	c.nowMs += deltaMs
}
