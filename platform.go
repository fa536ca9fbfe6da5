package nova

import (
	"image"
	"io/fs"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyAction is the raw state change a platform reports for a key.
type KeyAction uint8

const (
	KeyActionPress KeyAction = iota
	KeyActionRelease
	KeyActionRepeat
)

// RawEventHandler receives untranslated platform input. Window implements
// it and converts everything into KeyboardEvent, MouseEvent and friends.
type RawEventHandler interface {
	OnRawKey(key ebiten.Key, action KeyAction, mods KeyModifiers)
	OnRawChar(r rune, mods KeyModifiers)
	OnRawMouseButton(button ebiten.MouseButton, pressed bool, mods KeyModifiers)
	OnRawCursor(x, y float64, mods KeyModifiers)
	OnRawScroll(dx, dy float64, mods KeyModifiers)
	OnRawResize(width, height int)
	OnRawDrop(fsys fs.FS, names []string)
}

// Platform is the native windowing backend behind a Window. All methods are
// called from the goroutine that runs the loop, except RequestClose and
// ShouldClose which may be called from any goroutine.
type Platform interface {
	// Open creates the native window. FullScreen ignores desc's size.
	Open(desc WindowDesc) error
	// Destroy tears the native window down.
	Destroy()
	// Run drives the platform loop, calling tick once per iteration until
	// tick returns an error. ErrStopLoop ends the loop with a nil result.
	Run(tick func() error) error
	// PollEvents delivers pending input to h without blocking.
	PollEvents(h RawEventHandler)
	ShouldClose() bool
	RequestClose()
	SetSize(width, height int)
	Size() (width, height int)
	SetPosition(x, y int)
	SetTitle(title string)
	SetIcon(icons []image.Image)
	SetVSync(enabled bool)
	// Backbuffer is the image presented each frame, or nil.
	Backbuffer() *ebiten.Image
	// CaptureScreenshot saves the next presented frame as a PNG in dir.
	CaptureScreenshot(dir, label string)
}

// Option configures NewApplication and CreateWindow.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	registry *Registry
	platform Platform
	now      func() time.Time
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = Logger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// WithLogger sets the logger. The default is the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRegistry tracks created objects in r. Without it objects are untracked.
func WithRegistry(r *Registry) Option {
	return func(s *settings) { s.registry = r }
}

// WithPlatform sets the windowing backend. The default is an EbitenPlatform.
func WithPlatform(p Platform) Option {
	return func(s *settings) { s.platform = p }
}

// WithNow sets the time source used for frame timing.
func WithNow(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}
