package nova

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakePlatform stands in for a native window. It echoes requested sizes,
// replays raw events from queued closures and runs the loop for at most
// maxTicks iterations.
type fakePlatform struct {
	openErr  error
	desc     WindowDesc
	width    int
	height   int
	closing  atomic.Bool
	maxTicks int
	ticks    int

	pending     []func(h RawEventHandler)
	perTick     func(tick int, h RawEventHandler)
	destroyed   int
	vsync       bool
	title       string
	icons       []image.Image
	screenshots []screenshotRequest
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{maxTicks: 1000}
}

func (p *fakePlatform) Open(desc WindowDesc) error {
	if p.openErr != nil {
		return p.openErr
	}
	p.desc = desc
	p.width, p.height = desc.Width, desc.Height
	p.vsync = desc.EnableVSync
	p.title = desc.Title
	return nil
}

func (p *fakePlatform) Destroy() { p.destroyed++ }

func (p *fakePlatform) Run(tick func() error) error {
	for p.ticks = 0; p.ticks < p.maxTicks; p.ticks++ {
		if err := tick(); err != nil {
			if errors.Is(err, ErrStopLoop) {
				return nil
			}
			return err
		}
	}
	return errors.New("fake platform: tick limit reached")
}

func (p *fakePlatform) PollEvents(h RawEventHandler) {
	events := p.pending
	p.pending = nil
	for _, ev := range events {
		ev(h)
	}
	if p.perTick != nil {
		p.perTick(p.ticks, h)
	}
}

func (p *fakePlatform) queue(ev func(h RawEventHandler)) { p.pending = append(p.pending, ev) }

func (p *fakePlatform) ShouldClose() bool           { return p.closing.Load() }
func (p *fakePlatform) RequestClose()               { p.closing.Store(true) }
func (p *fakePlatform) SetSize(width, height int)   { p.width, p.height = width, height }
func (p *fakePlatform) Size() (int, int)            { return p.width, p.height }
func (p *fakePlatform) SetPosition(x, y int)        {}
func (p *fakePlatform) SetTitle(title string)       { p.title = title }
func (p *fakePlatform) SetIcon(icons []image.Image) { p.icons = icons }
func (p *fakePlatform) SetVSync(enabled bool)       { p.vsync = enabled }
func (p *fakePlatform) Backbuffer() *ebiten.Image   { return nil }

func (p *fakePlatform) CaptureScreenshot(dir, label string) {
	p.screenshots = append(p.screenshots, screenshotRequest{dir: dir, label: label})
}

// recordingCallbacks counts every Callbacks notification.
type recordingCallbacks struct {
	sizeChanges int
	frames      int
	keys        []KeyboardEvent
	mice        []MouseEvent
	drops       []DroppedFile
	order       []string
}

func (c *recordingCallbacks) HandleWindowSizeChange() {
	c.sizeChanges++
	c.order = append(c.order, "size")
}

func (c *recordingCallbacks) HandleRenderFrame() error {
	c.frames++
	c.order = append(c.order, "frame")
	return nil
}

func (c *recordingCallbacks) HandleKeyboardEvent(e KeyboardEvent) { c.keys = append(c.keys, e) }
func (c *recordingCallbacks) HandleMouseEvent(e MouseEvent)       { c.mice = append(c.mice, e) }
func (c *recordingCallbacks) HandleDroppedFile(f DroppedFile)     { c.drops = append(c.drops, f) }

// fakeClock returns a time source that advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestFakePlatformRunStops(t *testing.T) {
	p := newFakePlatform()
	n := 0
	err := p.Run(func() error {
		n++
		if n == 3 {
			return ErrStopLoop
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	if n != 3 {
		t.Errorf("ticks = %d, want 3", n)
	}
}
