package nova

import (
	"errors"
	"fmt"
)

var (
	// ErrRefCountUnderflow is carried by the panic raised when an object is
	// released more times than it was retained.
	ErrRefCountUnderflow = errors.New("nova: reference count underflow")

	// ErrStopLoop is returned by a Platform tick function to end Run cleanly.
	ErrStopLoop = errors.New("nova: stop loop")

	// ErrAlreadyRunning is returned by Run on an application that is running.
	ErrAlreadyRunning = errors.New("nova: application already running")

	// ErrTerminated is returned by Run on an application that already ran.
	ErrTerminated = errors.New("nova: application terminated")

	// ErrPlatformBusy is returned when a platform cannot open another window.
	ErrPlatformBusy = errors.New("nova: platform window already open")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("nova: invalid config")
)

// AssertionError is the panic value for broken internal invariants. These
// are programming errors, not runtime conditions.
type AssertionError struct {
	Msg string
	Err error
}

func (e *AssertionError) Error() string {
	if e.Err != nil {
		return "assertion failed: " + e.Msg + ": " + e.Err.Error()
	}
	return "assertion failed: " + e.Msg
}

func (e *AssertionError) Unwrap() error { return e.Err }

// unreachable panics with an AssertionError.
func unreachable(format string, args ...any) {
	panic(&AssertionError{Msg: fmt.Sprintf(format, args...)})
}

// panicError converts a recovered panic value into an error, keeping
// AssertionErrors and other error values intact.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &unknownPanic{value: r}
}

// unknownPanic wraps a non-error panic value.
type unknownPanic struct {
	value any
}

func (p *unknownPanic) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}
