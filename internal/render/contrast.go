package render

import "time"

const (
	// ContrastMax is the top of the contrast level range accepted by
	// SetContrast. Levels are scaled to the sink's 0-255 range when applied.
	ContrastMax = 10

	DefaultContrastInterval = 100 * time.Millisecond
)

// NativeContrast converts a level in [0, ContrastMax] to the sink's range.
func NativeContrast(level int) uint8 {
	level = min(max(level, 0), ContrastMax)
	return uint8(level * 255 / ContrastMax)
}

// ContrastLimiter holds the requested contrast and pushes it to the sink no
// more than once per interval, and only when it differs from the last value
// that was applied.
type ContrastLimiter struct {
	target   int
	applied  int
	last     time.Time
	interval time.Duration
	now      func() time.Time
}

func NewContrastLimiter(interval time.Duration, now func() time.Time) *ContrastLimiter {
	if now == nil {
		now = time.Now
	}
	return &ContrastLimiter{target: ContrastMax, applied: ContrastMax, interval: interval, now: now}
}

// Set records a new target level, clamped to [0, ContrastMax].
func (c *ContrastLimiter) Set(level int) {
	c.target = min(max(level, 0), ContrastMax)
}

func (c *ContrastLimiter) Target() int  { return c.target }
func (c *ContrastLimiter) Applied() int { return c.applied }

// Apply calls push with the native level when an update is due. The target
// only counts as applied when push succeeds.
func (c *ContrastLimiter) Apply(push func(level uint8) error) error {
	if c.target == c.applied {
		return nil
	}
	now := c.now()
	if !c.last.IsZero() && now.Sub(c.last) < c.interval {
		return nil
	}
	if err := push(NativeContrast(c.target)); err != nil {
		return err
	}
	c.applied = c.target
	c.last = now
	return nil
}
