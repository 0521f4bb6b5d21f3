package animation

import (
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// Animation is the lifecycle contract every pattern implements.
//
// Start runs the pattern synchronously on the calling goroutine until
// Stop is observed, the timeout elapses (0 means no deadline; checked
// once per loop pass), or — when oneShot is true — one full cycle of
// the pattern completes. Start clears the instance's cancellation flag
// at entry, so calling it again after a prior run returned behaves like
// a fresh instance.
//
// Stop requests termination of an in-progress or future Start. It is
// non-blocking, safe from any goroutine, and safe when no Start is in
// progress.
//
// An instance supports one Start at a time; concurrent Start calls on
// the same instance are undefined.
type Animation interface {
	Start(timeout time.Duration, oneShot bool) error
	Stop()
}

// Logger is the logging interface the patterns use for diagnostics.
// It matches the logging package's wrapper so either can be plugged in.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// base carries the state shared by every pattern: the strip handle, the
// cancellation signal, and an optional logger. Each instance owns
// exactly one stopSignal; composites forward Stop to their sub-pattern
// rather than sharing one.
type base struct {
	strip  led.Strip
	stop   stopSignal
	logger Logger
}

func newBase(strip led.Strip) base {
	return base{strip: strip, logger: noopLogger{}}
}

// Stop requests termination of an in-progress or future Start.
func (b *base) Stop() {
	b.stop.Set()
}

// SetLogger sets the logger used for pattern diagnostics.
func (b *base) SetLogger(logger Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// deadlineFrom converts a relative timeout into an absolute deadline,
// computed once at the start of a run. Zero means no deadline.
func deadlineFrom(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

// expired reports whether a deadline exists and has passed.
func expired(deadline time.Time) bool {
	return !deadline.IsZero() && time.Now().After(deadline)
}
