package nova

import (
	"fmt"
	"image"
	_ "image/png" // window icons are PNG files
	"io/fs"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// Callbacks is implemented by the owner of a Window and receives every
// translated window-system notification.
type Callbacks interface {
	HandleWindowSizeChange()
	HandleRenderFrame() error
	HandleKeyboardEvent(e KeyboardEvent)
	HandleMouseEvent(e MouseEvent)
	HandleDroppedFile(f DroppedFile)
}

// Window owns one native window and translates its input into engine
// events for a Callbacks implementation. A Window is used from a single
// goroutine; only Shutdown and ShouldClose may be called from others.
type Window struct {
	ObjectBase

	platform   Platform
	desc       WindowDesc
	mouseScale Vec2
	cursor     Vec2 // last cursor position in pixels
	callbacks  Callbacks
	logger     *slog.Logger
}

// CreateWindow opens a window and returns the only reference to it. The
// native window closes when the last reference is reset.
func CreateWindow(desc WindowDesc, callbacks Callbacks, opts ...Option) (Ref[*Window], error) {
	s := newSettings(opts)
	p := s.platform
	if p == nil {
		p = NewEbitenPlatform(s.logger)
	}
	if err := p.Open(desc); err != nil {
		return Ref[*Window]{}, fmt.Errorf("open window %q: %w", desc.Title, err)
	}

	w := &Window{
		platform:  p,
		desc:      desc,
		callbacks: callbacks,
		logger:    s.logger,
	}
	if width, height := p.Size(); width > 0 && height > 0 {
		w.desc.Width, w.desc.Height = width, height
	}
	w.updateMouseScale()
	w.Track(s.registry)

	s.logger.Info("window created",
		"title", w.desc.Title,
		"width", w.desc.Width,
		"height", w.desc.Height,
		"mode", w.desc.Mode.String())
	return NewRef(w), nil
}

// ID implements Object.
func (w *Window) ID() string { return "nova.Window" }

// Destroy closes the native window. It runs when the last Ref is released.
func (w *Window) Destroy() {
	w.platform.Destroy()
	w.logger.Info("window destroyed", "title", w.desc.Title)
}

func (w *Window) updateMouseScale() {
	w.mouseScale = Vec2{}
	if w.desc.Width > 0 {
		w.mouseScale.X = 1 / float64(w.desc.Width)
	}
	if w.desc.Height > 0 {
		w.mouseScale.Y = 1 / float64(w.desc.Height)
	}
}

// Resize requests a new client-area size. A minimized window only records
// the size. Either way the callbacks are notified afterwards.
func (w *Window) Resize(width, height int) {
	if w.desc.Mode == WindowModeMinimized {
		w.desc.Width, w.desc.Height = width, height
	} else {
		w.platform.SetSize(width, height)
		w.desc.Width, w.desc.Height = w.platform.Size()
	}
	w.updateMouseScale()
	w.callbacks.HandleWindowSizeChange()
}

// Shutdown asks the window to close on the next loop iteration.
func (w *Window) Shutdown() { w.platform.RequestClose() }

// ShouldClose reports whether a close was requested by the user or Shutdown.
func (w *Window) ShouldClose() bool { return w.platform.ShouldClose() }

// MsgLoop runs the platform loop until the window should close. Each
// iteration polls input and then renders a frame. The callbacks receive one
// size notification before the first frame.
func (w *Window) MsgLoop() error {
	w.callbacks.HandleWindowSizeChange()
	return w.platform.Run(func() error {
		if w.platform.ShouldClose() {
			return ErrStopLoop
		}
		w.platform.PollEvents((*windowEvents)(w))
		return w.callbacks.HandleRenderFrame()
	})
}

// SetPosition moves the window's top-left corner.
func (w *Window) SetPosition(x, y int) { w.platform.SetPosition(x, y) }

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.desc.Title = title
	w.platform.SetTitle(title)
}

// SetIcon loads a PNG file and uses it as the window icon. A failure is
// logged and otherwise ignored.
func (w *Window) SetIcon(path string) {
	img, err := loadIcon(path)
	if err != nil {
		w.logger.Error("set window icon", "path", path, "err", err)
		return
	}
	w.platform.SetIcon([]image.Image{img})
}

func loadIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SetVSync toggles vertical sync.
func (w *Window) SetVSync(enabled bool) {
	w.desc.EnableVSync = enabled
	w.platform.SetVSync(enabled)
}

// ClientAreaSize returns the drawable size in pixels.
func (w *Window) ClientAreaSize() (width, height int) {
	return w.desc.Width, w.desc.Height
}

// Desc returns the window's current description.
func (w *Window) Desc() WindowDesc { return w.desc }

// Platform returns the native backend.
func (w *Window) Platform() Platform { return w.platform }

// Backbuffer returns the image presented each frame, or nil.
func (w *Window) Backbuffer() *ebiten.Image { return w.platform.Backbuffer() }

// Screenshot saves the next presented frame under dir.
func (w *Window) Screenshot(dir, label string) { w.platform.CaptureScreenshot(dir, label) }

// windowEvents is the Window seen as a RawEventHandler.
type windowEvents Window

func (e *windowEvents) OnRawKey(key ebiten.Key, action KeyAction, mods KeyModifiers) {
	k := translateKey(key)
	ev := KeyboardEvent{Key: k, Mods: fixModifiers(k, action, mods)}
	switch action {
	case KeyActionPress:
		ev.Type = KeyPressed
	case KeyActionRelease:
		ev.Type = KeyReleased
	case KeyActionRepeat:
		ev.Type = KeyRepeated
	default:
		return
	}
	e.callbacks.HandleKeyboardEvent(ev)
}

func (e *windowEvents) OnRawChar(r rune, mods KeyModifiers) {
	e.callbacks.HandleKeyboardEvent(KeyboardEvent{
		Type:      KeyInput,
		Key:       KeyUnknown,
		Mods:      mods,
		Codepoint: r,
	})
}

func (e *windowEvents) OnRawMouseButton(button ebiten.MouseButton, pressed bool, mods KeyModifiers) {
	var b MouseButton
	switch button {
	case ebiten.MouseButtonLeft:
		b = MouseButtonLeft
	case ebiten.MouseButtonMiddle:
		b = MouseButtonMiddle
	case ebiten.MouseButtonRight:
		b = MouseButtonRight
	default:
		return
	}
	ev := MouseEvent{
		Type:      MouseButtonUp,
		Pos:       e.normalize(e.cursor),
		ScreenPos: e.cursor,
		Mods:      mods,
		Button:    b,
	}
	if pressed {
		ev.Type = MouseButtonDown
	}
	e.callbacks.HandleMouseEvent(ev)
}

func (e *windowEvents) OnRawCursor(x, y float64, mods KeyModifiers) {
	e.cursor = Vec2{X: x, Y: y}
	e.callbacks.HandleMouseEvent(MouseEvent{
		Type:      MouseMove,
		Pos:       e.normalize(e.cursor),
		ScreenPos: e.cursor,
		Mods:      mods,
	})
}

func (e *windowEvents) OnRawScroll(dx, dy float64, mods KeyModifiers) {
	e.callbacks.HandleMouseEvent(MouseEvent{
		Type:       MouseWheel,
		Pos:        e.normalize(e.cursor),
		ScreenPos:  e.cursor,
		WheelDelta: Vec2{X: dx, Y: dy},
		Mods:       mods,
	})
}

// OnRawResize ignores zero sizes, which platforms report while minimized.
func (e *windowEvents) OnRawResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.desc.Width, e.desc.Height = width, height
	(*Window)(e).updateMouseScale()
	e.callbacks.HandleWindowSizeChange()
}

func (e *windowEvents) OnRawDrop(fsys fs.FS, names []string) {
	for _, name := range names {
		e.callbacks.HandleDroppedFile(DroppedFile{Name: name, FS: fsys})
	}
}

func (e *windowEvents) normalize(p Vec2) Vec2 {
	return Vec2{X: p.X * e.mouseScale.X, Y: p.Y * e.mouseScale.Y}
}
