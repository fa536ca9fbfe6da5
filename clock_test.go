package nova

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestClockTick(t *testing.T) {
	c := NewClock(2, false)
	c.Tick(100 * time.Millisecond)
	c.Tick(100 * time.Millisecond)
	if c.Frame() != 2 {
		t.Errorf("Frame = %d, want 2", c.Frame())
	}
	if !almostEqual(c.Delta(), 0.2) {
		t.Errorf("Delta = %v, want 0.2", c.Delta())
	}
	if !almostEqual(c.Time(), 0.4) {
		t.Errorf("Time = %v, want 0.4", c.Time())
	}
}

func TestClockPause(t *testing.T) {
	c := NewClock(1, true)
	c.Tick(time.Second)
	if c.Time() != 0 || c.Delta() != 0 {
		t.Errorf("paused clock advanced: time=%v delta=%v", c.Time(), c.Delta())
	}
	if c.Frame() != 1 {
		t.Errorf("paused clock must still count frames, Frame = %d", c.Frame())
	}
	c.SetPaused(false)
	c.Tick(time.Second)
	if !almostEqual(c.Time(), 1) {
		t.Errorf("Time = %v, want 1", c.Time())
	}
}

func TestClockRamp(t *testing.T) {
	c := NewClock(0, false)
	c.RampTimeScale(1, time.Second, ease.Linear)

	c.Tick(500 * time.Millisecond)
	if !almostEqual(c.TimeScale(), 0.5) {
		t.Errorf("TimeScale halfway = %v, want 0.5", c.TimeScale())
	}
	c.Tick(time.Second)
	if !almostEqual(c.TimeScale(), 1) {
		t.Errorf("TimeScale after ramp = %v, want 1", c.TimeScale())
	}
	c.Tick(time.Second)
	if !almostEqual(c.TimeScale(), 1) {
		t.Errorf("TimeScale changed after ramp finished: %v", c.TimeScale())
	}
}

func TestClockRampCancelled(t *testing.T) {
	c := NewClock(1, false)
	c.RampTimeScale(4, time.Second, nil)
	c.SetTimeScale(3)
	c.Tick(500 * time.Millisecond)
	if c.TimeScale() != 3 {
		t.Errorf("TimeScale = %v, want 3", c.TimeScale())
	}

	c.RampTimeScale(0, 0, nil)
	if c.TimeScale() != 0 {
		t.Errorf("zero-length ramp: TimeScale = %v, want 0", c.TimeScale())
	}
}
