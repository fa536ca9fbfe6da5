package nova

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// AppState is the lifecycle stage of an Application.
type AppState int32

const (
	StateConstructed AppState = iota
	StateRunning
	StateShuttingDown
	StateTerminated
)

func (s AppState) String() string {
	switch s {
	case StateConstructed:
		return "Constructed"
	case StateRunning:
		return "Running"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("AppState(%d)", int32(s))
	}
}

// appMode is either *windowedMode or *headlessMode.
type appMode interface {
	frameSize() (width, height int)
}

// platform is copied from the window at construction so that Shutdown can
// request a close without touching window, which Close resets.
type windowedMode struct {
	window   Ref[*Window]
	platform Platform
}

func (m *windowedMode) frameSize() (int, int) {
	if !m.window.Valid() {
		return 0, 0
	}
	return m.window.Get().ClientAreaSize()
}

type headlessMode struct {
	width, height int
}

func (m *headlessMode) frameSize() (int, int) { return m.width, m.height }

// Application owns the run loop. It receives window events as the window's
// Callbacks, keeps the input state current and forwards everything to its
// Hooks.
//
// Everything except Shutdown, State and ReturnCode must be called from the
// goroutine that runs the loop.
type Application struct {
	cfg      AppConfig
	hooks    Hooks
	mode     appMode
	input    InputState
	clock    *Clock
	stats    frameStats
	inject   []injectedEvent
	runner   *TestRunner
	logger   *slog.Logger
	registry *Registry
	now      func() time.Time

	lastFrame time.Time

	state      atomic.Int32
	terminate  atomic.Bool
	returnCode atomic.Int32
}

// NewApplication validates cfg and, unless cfg.Headless is set, opens the
// window. A nil hooks uses BaseHooks.
func NewApplication(cfg AppConfig, hooks Hooks, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if hooks == nil {
		hooks = BaseHooks{}
	}
	s := newSettings(opts)
	a := &Application{
		cfg:      cfg,
		hooks:    hooks,
		clock:    NewClock(cfg.TimeScale, cfg.PauseTime),
		logger:   s.logger,
		registry: s.registry,
		now:      s.now,
	}

	if cfg.Headless {
		a.mode = &headlessMode{width: cfg.WindowDesc.Width, height: cfg.WindowDesc.Height}
		a.logger.Info("application created", "headless", true)
		return a, nil
	}

	window, err := CreateWindow(cfg.WindowDesc, a, opts...)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	if cfg.IconPath != "" {
		window.Get().SetIcon(cfg.IconPath)
	}
	a.mode = &windowedMode{window: window, platform: window.Get().Platform()}
	a.logger.Info("application created", "headless", false)
	return a, nil
}

// Run loads the application and runs frames until Shutdown is called or the
// window closes. It returns the code passed to the last Shutdown call.
// OnShutdown is the last hook called before Run returns. Run can be called
// once.
func (a *Application) Run() (code int, err error) {
	if !a.state.CompareAndSwap(int32(StateConstructed), int32(StateRunning)) {
		if a.State() == StateTerminated {
			return 0, ErrTerminated
		}
		return 0, ErrAlreadyRunning
	}
	if a.terminate.Load() {
		a.state.Store(int32(StateShuttingDown))
	}
	a.logger.Info("application running")

	defer func() {
		a.state.Store(int32(StateTerminated))
		a.hooks.OnShutdown(a)
		code = int(a.returnCode.Load())
		a.logger.Info("application terminated", "code", code, "frames", a.clock.Frame())
	}()

	if err := a.hooks.OnLoad(a); err != nil {
		return 0, fmt.Errorf("load: %w", err)
	}
	a.lastFrame = a.now()

	switch m := a.mode.(type) {
	case *windowedMode:
		err = m.window.Get().MsgLoop()
	case *headlessMode:
		a.hooks.OnResize(a, m.width, m.height)
		for !a.terminate.Load() {
			if err = a.HandleRenderFrame(); err != nil {
				break
			}
		}
	default:
		unreachable("application mode %T", a.mode)
	}
	return 0, err
}

// Shutdown asks the loop to stop and records the code Run returns. It may be
// called repeatedly and from any goroutine; the last code wins.
func (a *Application) Shutdown(code int) {
	a.returnCode.Store(int32(code))
	a.terminate.Store(true)
	a.state.CompareAndSwap(int32(StateRunning), int32(StateShuttingDown))
	if m, ok := a.mode.(*windowedMode); ok {
		m.platform.RequestClose()
	}
}

// Close releases the window. With a registry attached, objects still alive
// afterwards are logged. Close is a no-op on a closed application.
func (a *Application) Close() {
	if m, ok := a.mode.(*windowedMode); ok {
		m.window.Reset()
	}
	if a.registry != nil {
		a.registry.TraceAlive()
	}
}

// ResizeFrameBuffer changes the frame size. A windowed application resizes
// its window, which reports back through HandleWindowSizeChange. A headless
// application has no window and calls OnResize directly.
func (a *Application) ResizeFrameBuffer(width, height int) {
	switch m := a.mode.(type) {
	case *windowedMode:
		if m.window.Valid() {
			m.window.Get().Resize(width, height)
		}
	case *headlessMode:
		m.width, m.height = width, height
		a.hooks.OnResize(a, width, height)
	default:
		unreachable("application mode %T", a.mode)
	}
}

// Screenshot saves the next presented frame to the configured screenshot
// directory. Headless applications have nothing to capture.
func (a *Application) Screenshot(label string) {
	m, ok := a.mode.(*windowedMode)
	if !ok || !m.window.Valid() {
		a.logger.Warn("screenshot skipped: no window", "label", label)
		return
	}
	m.window.Get().Screenshot(a.cfg.ScreenshotDir, label)
}

// SetTestRunner attaches a scripted input run. The runner steps once per
// frame before injected input is processed.
func (a *Application) SetTestRunner(r *TestRunner) { a.runner = r }

// Config returns the current configuration, including runtime toggles.
func (a *Application) Config() AppConfig { return a.cfg }

// State returns the lifecycle stage.
func (a *Application) State() AppState { return AppState(a.state.Load()) }

// ReturnCode returns the code of the last Shutdown call.
func (a *Application) ReturnCode() int { return int(a.returnCode.Load()) }

// Headless reports whether the application runs without a window.
func (a *Application) Headless() bool {
	_, ok := a.mode.(*headlessMode)
	return ok
}

// Window returns the application's window, or nil when headless or closed.
func (a *Application) Window() *Window {
	if m, ok := a.mode.(*windowedMode); ok && m.window.Valid() {
		return m.window.Get()
	}
	return nil
}

// FrameBufferSize returns the current frame size in pixels.
func (a *Application) FrameBufferSize() (width, height int) { return a.mode.frameSize() }

// Input returns the input state.
func (a *Application) Input() *InputState { return &a.input }

// Clock returns the application clock.
func (a *Application) Clock() *Clock { return a.clock }

// Logger returns the application's logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// HandleWindowSizeChange implements Callbacks.
func (a *Application) HandleWindowSizeChange() {
	w, h := a.mode.frameSize()
	a.logger.Debug("frame buffer resized", "width", w, "height", h)
	a.hooks.OnResize(a, w, h)
}

// HandleRenderFrame implements Callbacks. It advances the clock, applies
// scripted and injected input, renders and ends the input frame.
func (a *Application) HandleRenderFrame() error {
	now := a.now()
	elapsed := now.Sub(a.lastFrame)
	a.lastFrame = now
	a.clock.Tick(elapsed)
	if a.stats.record(elapsed) {
		a.logger.Debug("frame stats",
			"frame", a.clock.Frame(),
			"fps", a.stats.fps(),
			"frameTime", a.stats.average())
	}

	if a.runner != nil {
		a.runner.step(a)
	}
	a.processInjected()

	return a.renderFrame()
}

func (a *Application) renderFrame() error {
	defer a.input.EndFrame()

	var target *ebiten.Image
	if m, ok := a.mode.(*windowedMode); ok && m.window.Valid() {
		target = m.window.Get().Backbuffer()
	}
	ctx := &RenderContext{
		Target: target,
		Frame:  a.clock.Frame(),
		Time:   a.clock.Time(),
		Delta:  a.clock.Delta(),
		Input:  &a.input,
	}
	if err := a.hooks.OnFrameRender(a, ctx); err != nil {
		return fmt.Errorf("render frame %d: %w", ctx.Frame, err)
	}
	if a.cfg.ShowUI && target != nil {
		a.stats.draw(target, a.clock)
	}
	return nil
}

// HandleKeyboardEvent implements Callbacks. The input state sees the event
// first, then OnKeyEvent, then the built-in shortcuts.
func (a *Application) HandleKeyboardEvent(e KeyboardEvent) {
	a.input.OnKeyEvent(e)
	if a.hooks.OnKeyEvent(a, e) {
		return
	}
	if e.Type != KeyPressed || e.Mods != ModNone {
		return
	}
	switch e.Key {
	case KeyEscape:
		a.Shutdown(0)
	case KeyF2:
		a.cfg.ShowUI = !a.cfg.ShowUI
		a.hooks.OnOptionsChange(a)
	case KeyV:
		a.cfg.WindowDesc.EnableVSync = !a.cfg.WindowDesc.EnableVSync
		if w := a.Window(); w != nil {
			w.SetVSync(a.cfg.WindowDesc.EnableVSync)
		}
		a.hooks.OnOptionsChange(a)
	case KeyPause:
		a.cfg.PauseTime = !a.cfg.PauseTime
		a.clock.SetPaused(a.cfg.PauseTime)
		a.hooks.OnOptionsChange(a)
	case KeyF5:
		a.logger.Info("hot reload", "what", "shaders")
		a.hooks.OnHotReload(a, HotReloadShaders)
	case KeyF12, KeyPrintScreen:
		a.Screenshot("frame")
	}
}

// HandleMouseEvent implements Callbacks.
func (a *Application) HandleMouseEvent(e MouseEvent) {
	a.input.OnMouseEvent(e)
	a.hooks.OnMouseEvent(a, e)
}

// HandleDroppedFile implements Callbacks.
func (a *Application) HandleDroppedFile(f DroppedFile) {
	a.hooks.OnDroppedFile(a, f)
}
