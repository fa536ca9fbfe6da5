package nova

import (
	"errors"
	"image"
	"io/fs"
	"log/slog"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	keyRepeatDelay    = 30 // ticks before a held key starts repeating
	keyRepeatInterval = 3  // ticks between repeats
)

// ebitenWindows counts open Ebitengine windows. Ebitengine drives a single
// window per process.
var ebitenWindows atomic.Int32

// polledMouseButtons are forwarded raw; Window keeps left, right and middle.
var polledMouseButtons = [...]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButton3,
	ebiten.MouseButton4,
}

// EbitenPlatform implements Platform on top of Ebitengine. Ebitengine owns
// the loop: Run hands control to ebiten.RunGame and the tick function runs
// inside Update. Frames are drawn into Backbuffer during the tick and
// presented in Draw.
type EbitenPlatform struct {
	logger *slog.Logger

	desc          WindowDesc
	closing       atomic.Bool
	width, height int // size last reported to the handler
	layoutW       int
	layoutH       int
	cursorX       int
	cursorY       int
	cursorKnown   bool

	keys  []ebiten.Key
	chars []rune

	backbuffer  *ebiten.Image
	screenshots []screenshotRequest

	tick func() error
}

// NewEbitenPlatform creates an unopened platform. A nil logger uses the
// package logger.
func NewEbitenPlatform(logger *slog.Logger) *EbitenPlatform {
	if logger == nil {
		logger = Logger()
	}
	return &EbitenPlatform{logger: logger}
}

// Open applies desc to the Ebitengine window. The native window itself
// appears when Run starts.
func (p *EbitenPlatform) Open(desc WindowDesc) error {
	if !ebitenWindows.CompareAndSwap(0, 1) {
		return ErrPlatformBusy
	}
	p.desc = desc

	ebiten.SetWindowTitle(desc.Title)
	if desc.ResizableWindow {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(desc.EnableVSync)
	ebiten.SetWindowClosingHandled(true)

	p.width, p.height = desc.Width, desc.Height
	switch desc.Mode {
	case WindowModeFullScreen:
		if m := ebiten.Monitor(); m != nil {
			if w, h := m.Size(); w > 0 && h > 0 {
				p.width, p.height = w, h
			}
		}
		ebiten.SetFullscreen(true)
	case WindowModeMinimized:
		ebiten.SetWindowSize(desc.Width, desc.Height)
		ebiten.MinimizeWindow()
	default:
		ebiten.SetWindowSize(desc.Width, desc.Height)
	}
	p.logger.Debug("ebiten window configured", "width", p.width, "height", p.height)
	return nil
}

// Destroy releases the backbuffer and frees the process-wide window slot.
func (p *EbitenPlatform) Destroy() {
	if p.backbuffer != nil {
		p.backbuffer.Deallocate()
		p.backbuffer = nil
	}
	if ebitenWindows.Add(-1) == 0 {
		p.logger.Debug("last ebiten window closed")
	}
}

// Run blocks in ebiten.RunGame until tick stops the loop or fails.
func (p *EbitenPlatform) Run(tick func() error) error {
	p.tick = tick
	return ebiten.RunGame(&ebitenShell{p: p})
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	return mods
}

func isVirtualKey(k ebiten.Key) bool {
	switch k {
	case ebiten.KeyShift, ebiten.KeyControl, ebiten.KeyAlt, ebiten.KeyMeta:
		return true
	}
	return false
}

// repeatDue reports whether a key held for d ticks emits a repeat this tick.
func repeatDue(d int) bool {
	return d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// takeLayoutResize reports a client-area change seen by Layout once, and
// adopts it as the current size.
func (p *EbitenPlatform) takeLayoutResize() (width, height int, ok bool) {
	if p.layoutW <= 0 || p.layoutH <= 0 || (p.layoutW == p.width && p.layoutH == p.height) {
		return 0, 0, false
	}
	p.width, p.height = p.layoutW, p.layoutH
	return p.width, p.height, true
}

// dropNames lists the top-level entries of a dropped file set.
func dropNames(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// forwardKeys sends keys to h, skipping the virtual modifier keys that
// Ebitengine reports alongside their left and right variants.
func forwardKeys(h RawEventHandler, keys []ebiten.Key, action KeyAction, mods KeyModifiers) {
	for _, k := range keys {
		if !isVirtualKey(k) {
			h.OnRawKey(k, action, mods)
		}
	}
}

// PollEvents reads this tick's input from Ebitengine and forwards it to h.
func (p *EbitenPlatform) PollEvents(h RawEventHandler) {
	if ebiten.IsWindowBeingClosed() {
		p.closing.Store(true)
	}
	if width, height, ok := p.takeLayoutResize(); ok {
		h.OnRawResize(width, height)
	}

	mods := readModifiers()

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	forwardKeys(h, p.keys, KeyActionPress, mods)
	p.keys = inpututil.AppendPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if !isVirtualKey(k) && repeatDue(inpututil.KeyPressDuration(k)) {
			h.OnRawKey(k, KeyActionRepeat, mods)
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	forwardKeys(h, p.keys, KeyActionRelease, mods)

	p.chars = ebiten.AppendInputChars(p.chars[:0])
	for _, r := range p.chars {
		h.OnRawChar(r, mods)
	}

	x, y := ebiten.CursorPosition()
	if !p.cursorKnown || x != p.cursorX || y != p.cursorY {
		p.cursorX, p.cursorY, p.cursorKnown = x, y, true
		h.OnRawCursor(float64(x), float64(y), mods)
	}
	for _, b := range polledMouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			h.OnRawMouseButton(b, true, mods)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			h.OnRawMouseButton(b, false, mods)
		}
	}
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		h.OnRawScroll(dx, dy, mods)
	}

	if dropped := ebiten.DroppedFiles(); dropped != nil {
		names, err := dropNames(dropped)
		if err != nil {
			p.logger.Warn("read dropped files", "err", err)
			return
		}
		h.OnRawDrop(dropped, names)
	}
}

// ShouldClose reports whether the window was asked to close.
func (p *EbitenPlatform) ShouldClose() bool { return p.closing.Load() }

// RequestClose makes the next tick end the loop.
func (p *EbitenPlatform) RequestClose() { p.closing.Store(true) }

// SetSize resizes the window. The new size is not reported back through
// OnRawResize.
func (p *EbitenPlatform) SetSize(width, height int) {
	ebiten.SetWindowSize(width, height)
	p.recordSize(width, height)
}

// recordSize adopts a size the caller requested, so the Layout echo of it
// is not reported as a resize.
func (p *EbitenPlatform) recordSize(width, height int) {
	p.width, p.height = width, height
	p.layoutW, p.layoutH = width, height
}

// Size returns the current client-area size.
func (p *EbitenPlatform) Size() (int, int) { return p.width, p.height }

func (p *EbitenPlatform) SetPosition(x, y int)        { ebiten.SetWindowPosition(x, y) }
func (p *EbitenPlatform) SetTitle(title string)       { ebiten.SetWindowTitle(title) }
func (p *EbitenPlatform) SetIcon(icons []image.Image) { ebiten.SetWindowIcon(icons) }
func (p *EbitenPlatform) SetVSync(enabled bool)       { ebiten.SetVsyncEnabled(enabled) }

// Backbuffer returns an offscreen image matching the client area, creating
// or recreating it as the size changes.
func (p *EbitenPlatform) Backbuffer() *ebiten.Image {
	if p.width <= 0 || p.height <= 0 {
		return nil
	}
	if p.backbuffer != nil {
		b := p.backbuffer.Bounds()
		if b.Dx() == p.width && b.Dy() == p.height {
			return p.backbuffer
		}
		p.backbuffer.Deallocate()
	}
	p.backbuffer = ebiten.NewImage(p.width, p.height)
	return p.backbuffer
}

// CaptureScreenshot queues a capture of the next presented frame.
func (p *EbitenPlatform) CaptureScreenshot(dir, label string) {
	p.screenshots = append(p.screenshots, screenshotRequest{dir: dir, label: label})
}

// ebitenShell adapts EbitenPlatform to ebiten.Game.
type ebitenShell struct {
	p *EbitenPlatform
}

// Update runs one tick. Panics are turned into errors so that they surface
// from RunGame on the caller's goroutine.
func (s *ebitenShell) Update() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	if err := s.p.tick(); err != nil {
		if errors.Is(err, ErrStopLoop) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (s *ebitenShell) Draw(screen *ebiten.Image) {
	if s.p.backbuffer != nil {
		screen.DrawImage(s.p.backbuffer, nil)
	}
	flushScreenshots(screen, s.p.screenshots, s.p.logger)
	s.p.screenshots = s.p.screenshots[:0]
}

func (s *ebitenShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.p.layoutW, s.p.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
