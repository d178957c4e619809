package clock

import (
	"time"
)

// Machine timing constants. One machine cycle is one tick of the
// 4.194304 MHz clock; instructions cost multiples of four.
const (
	CPUClockHz = 4194304
	TargetFPS  = 60

	// T-state budget per displayed frame
	CyclesPerFrame = CPUClockHz / TargetFPS
)

// FrameClock paces the emulation loop. The core itself is budget-driven
// (the frame driver executes CyclesPerFrame T-states per frame); the
// clock's only wall-time job is holding the host loop to the target
// frame rate when limiting is enabled.
type FrameClock struct {
	frameDuration time.Duration
	limitEnabled  bool
	lastFrame     time.Time
}

// NewFrameClock creates a frame clock with limiting enabled
func NewFrameClock() *FrameClock {
	return &FrameClock{
		frameDuration: time.Second / TargetFPS,
		limitEnabled:  true,
		lastFrame:     time.Now(),
	}
}

// SetLimit enables or disables wall-clock frame limiting
func (c *FrameClock) SetLimit(enabled bool) {
	c.limitEnabled = enabled
}

// LimitEnabled returns whether frame limiting is on
func (c *FrameClock) LimitEnabled() bool {
	return c.limitEnabled
}

// EndFrame sleeps out the remainder of the current frame slot when
// limiting is enabled, then starts the next slot
func (c *FrameClock) EndFrame() {
	now := time.Now()
	if c.limitEnabled {
		elapsed := now.Sub(c.lastFrame)
		if elapsed < c.frameDuration {
			time.Sleep(c.frameDuration - elapsed)
		}
	}
	c.lastFrame = time.Now()
}

// Reset restarts the current frame slot
func (c *FrameClock) Reset() {
	c.lastFrame = time.Now()
}
