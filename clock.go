package nova

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Clock tracks scaled application time. Tick advances it by one frame of
// real time; pausing freezes scaled time but still counts frames.
type Clock struct {
	time      float64
	delta     float64
	frame     uint64
	timeScale float64
	paused    bool
	ramp      *gween.Tween
}

// NewClock creates a clock with the given time scale and pause state.
func NewClock(timeScale float64, paused bool) *Clock {
	return &Clock{timeScale: timeScale, paused: paused}
}

// Tick advances the clock by real elapsed time.
func (c *Clock) Tick(real time.Duration) {
	dt := real.Seconds()
	if c.ramp != nil {
		v, done := c.ramp.Update(float32(dt))
		c.timeScale = float64(v)
		if done {
			c.ramp = nil
		}
	}
	c.frame++
	if c.paused {
		c.delta = 0
		return
	}
	c.delta = dt * c.timeScale
	c.time += c.delta
}

// Time returns scaled seconds since start.
func (c *Clock) Time() float64 { return c.time }

// Delta returns the scaled duration of the last tick in seconds.
func (c *Clock) Delta() float64 { return c.delta }

// Frame returns the number of ticks so far.
func (c *Clock) Frame() uint64 { return c.frame }

// TimeScale returns the current time scale.
func (c *Clock) TimeScale() float64 { return c.timeScale }

// SetTimeScale sets the scale immediately, cancelling any ramp.
func (c *Clock) SetTimeScale(scale float64) {
	c.ramp = nil
	c.timeScale = scale
}

// RampTimeScale eases the time scale to target over real duration over.
// A nil fn uses ease.Linear.
func (c *Clock) RampTimeScale(target float64, over time.Duration, fn ease.TweenFunc) {
	if over <= 0 {
		c.SetTimeScale(target)
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	c.ramp = gween.New(float32(c.timeScale), float32(target), float32(over.Seconds()), fn)
}

// Paused reports whether scaled time is frozen.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused freezes or resumes scaled time.
func (c *Clock) SetPaused(paused bool) { c.paused = paused }
