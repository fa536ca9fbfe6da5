package nova

import "github.com/hajimehoshi/ebiten/v2"

// Hooks are the override points an Application calls into. Embed BaseHooks
// and override only what is needed.
//
// OnKeyEvent and OnMouseEvent return true to suppress the built-in
// handling of the event.
type Hooks interface {
	OnLoad(app *Application) error
	OnShutdown(app *Application)
	OnResize(app *Application, width, height int)
	OnFrameRender(app *Application, ctx *RenderContext) error
	OnOptionsChange(app *Application)
	OnHotReload(app *Application, what HotReload)
	OnKeyEvent(app *Application, e KeyboardEvent) bool
	OnMouseEvent(app *Application, e MouseEvent) bool
	OnDroppedFile(app *Application, f DroppedFile)
}

// BaseHooks implements Hooks with no-ops.
type BaseHooks struct{}

func (BaseHooks) OnLoad(*Application) error                        { return nil }
func (BaseHooks) OnShutdown(*Application)                          {}
func (BaseHooks) OnResize(*Application, int, int)                  {}
func (BaseHooks) OnFrameRender(*Application, *RenderContext) error { return nil }
func (BaseHooks) OnOptionsChange(*Application)                     {}
func (BaseHooks) OnHotReload(*Application, HotReload)              {}
func (BaseHooks) OnKeyEvent(*Application, KeyboardEvent) bool      { return false }
func (BaseHooks) OnMouseEvent(*Application, MouseEvent) bool       { return false }
func (BaseHooks) OnDroppedFile(*Application, DroppedFile)          {}

// RenderContext describes the frame being rendered.
type RenderContext struct {
	// Target is the image presented at the end of the frame. It is nil for
	// headless applications.
	Target *ebiten.Image
	Frame  uint64
	// Time and Delta are scaled seconds from the application clock.
	Time  float64
	Delta float64
	Input *InputState
}
