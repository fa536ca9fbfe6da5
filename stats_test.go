package nova

import (
	"strings"
	"testing"
	"time"
)

func TestFrameStatsAverage(t *testing.T) {
	var s frameStats
	if s.average() != 0 || s.fps() != 0 {
		t.Fatal("empty stats should report zero")
	}
	for range 10 {
		s.record(10 * time.Millisecond)
	}
	if got := s.average(); got != 10*time.Millisecond {
		t.Errorf("average = %v, want 10ms", got)
	}
	if got := s.fps(); got < 99.9 || got > 100.1 {
		t.Errorf("fps = %v, want 100", got)
	}
}

func TestFrameStatsRollingWindow(t *testing.T) {
	var s frameStats
	for range statsWindow {
		s.record(50 * time.Millisecond)
	}
	for range statsWindow {
		s.record(20 * time.Millisecond)
	}
	if got := s.average(); got != 20*time.Millisecond {
		t.Errorf("average = %v, want 20ms once old samples rolled out", got)
	}
}

func TestFrameStatsLogInterval(t *testing.T) {
	var s frameStats
	logs := 0
	for range 3 * statsLogInterval {
		if s.record(time.Millisecond) {
			logs++
		}
	}
	if logs != 3 {
		t.Errorf("log ticks = %d, want 3", logs)
	}
}

func TestFrameStatsText(t *testing.T) {
	var s frameStats
	s.record(20 * time.Millisecond)
	c := NewClock(0.5, true)
	text := s.text(c)
	for _, want := range []string{"FPS: 50.0", "Frame: 20.00 ms", "x0.50", "paused"} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay text %q missing %q", text, want)
		}
	}
}
