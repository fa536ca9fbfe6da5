// Package nova is the application and windowing core of the Nova renderer,
// built on [Ebitengine].
//
// It provides reference-counted engine objects, a window with translated
// keyboard and mouse events, per-frame input state, and the Application run
// loop that ties them to user code.
//
// # Quick start
//
// Implement the hooks you need on a type that embeds [BaseHooks] and hand it
// to [NewApplication]:
//
//	type game struct{ nova.BaseHooks }
//
//	func (g *game) OnFrameRender(app *nova.Application, ctx *nova.RenderContext) error {
//		if ctx.Input.IsKeyPressed(nova.KeySpace) {
//			app.Logger().Info("jump")
//		}
//		return nil
//	}
//
//	func main() {
//		app, err := nova.NewApplication(nova.DefaultAppConfig(), &game{})
//		if err != nil {
//			log.Fatal(err)
//		}
//		os.Exit(nova.RunMain(app))
//	}
//
// [RunMain] is the outermost boundary: it recovers panics, logs failures and
// turns the result into an exit code.
//
// # Objects and references
//
// Engine types embed [ObjectBase] and implement [Object]. A [Ref] owns one
// reference; [Ref.Clone] shares ownership, [Ref.Move] hands it over and
// [Ref.Reset] releases it. When the last reference goes away the object's
// Destroy method runs. A [WeakRef] observes an object without keeping it
// alive.
//
// A [Registry] passed with [WithRegistry] records every live object so leaks
// can be listed with [Registry.TraceAlive]. Without one, objects are not
// tracked.
//
// # Input
//
// [InputState] keeps the current and previous frame's keyboard and mouse
// state. Down queries report the current state; Pressed, Clicked and
// Released queries report edges since the previous frame. The application
// calls [InputState.EndFrame] after every rendered frame.
//
// # Headless mode
//
// With AppConfig.Headless set no window is created and frames run back to
// back until [Application.Shutdown]. Input can be synthesized with the
// Inject methods or a [TestRunner] script, which makes headless runs
// suitable for automated tests.
//
// # Logging
//
// nova logs through [log/slog] and is silent by default. Call [SetLogger],
// or pass [WithLogger] to a single application.
//
// [Ebitengine]: https://ebitengine.org
package nova
