package nova

import (
	"context"
	"errors"
	"log/slog"
)

// RunMain runs app and reports any failure, returning a process exit code:
// the application's return code on success and 1 otherwise. Panics raised
// while running are recovered here. The application is closed before
// RunMain returns.
//
//	func main() {
//		app, err := nova.NewApplication(cfg, &game{})
//		if err != nil { ... }
//		os.Exit(nova.RunMain(app))
//	}
func RunMain(app *Application) (code int) {
	logger := app.Logger()
	defer app.Close()
	defer func() {
		if r := recover(); r != nil {
			code = reportFailure(logger, panicError(r))
		}
	}()

	rc, err := app.Run()
	if err != nil {
		return reportFailure(logger, err)
	}
	return rc
}

// reportFailure logs err by kind and returns the failure exit code.
func reportFailure(logger *slog.Logger, err error) int {
	var assertion *AssertionError
	var unknown *unknownPanic
	switch {
	case errors.As(err, &assertion):
		logger.Error("assertion failed", "err", err)
	case errors.As(err, &unknown):
		logger.Log(context.Background(), LevelFatal, "unknown error", "value", unknown.value)
	default:
		logger.Log(context.Background(), LevelFatal, "fatal error", "err", err)
	}
	return 1
}
