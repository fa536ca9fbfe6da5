package nova

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	statsWindow      = 60  // frames in the rolling average
	statsLogInterval = 600 // frames between debug log lines
)

// frameStats keeps a rolling window of frame times.
type frameStats struct {
	samples [statsWindow]time.Duration
	next    int
	filled  int
	sum     time.Duration
	frames  uint64
	panel   *ebiten.Image
}

// record adds one frame time. It reports true every statsLogInterval frames.
func (s *frameStats) record(d time.Duration) bool {
	if s.filled == statsWindow {
		s.sum -= s.samples[s.next]
	} else {
		s.filled++
	}
	s.samples[s.next] = d
	s.sum += d
	s.next = (s.next + 1) % statsWindow
	s.frames++
	return s.frames%statsLogInterval == 0
}

// average returns the mean frame time over the window.
func (s *frameStats) average() time.Duration {
	if s.filled == 0 {
		return 0
	}
	return s.sum / time.Duration(s.filled)
}

// fps returns frames per second derived from the average frame time.
func (s *frameStats) fps() float64 {
	avg := s.average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

func (s *frameStats) text(c *Clock) string {
	state := "running"
	if c.Paused() {
		state = "paused"
	}
	return fmt.Sprintf("FPS: %.1f\nFrame: %.2f ms\nTime: %.2f s x%.2f (%s)",
		s.fps(),
		float64(s.average().Microseconds())/1000,
		c.Time(), c.TimeScale(), state)
}

// draw prints the statistics in the top-left corner of target.
func (s *frameStats) draw(target *ebiten.Image, c *Clock) {
	if s.panel == nil {
		// 220x52 fits three lines of the debug font.
		s.panel = ebiten.NewImage(220, 52)
	}
	s.panel.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(s.panel, s.text(c))
	target.DrawImage(s.panel, nil)
}
