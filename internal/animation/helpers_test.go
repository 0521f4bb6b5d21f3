package animation

import (
	"errors"
	"sync"
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// errDevice is the injected device failure used by error-path tests.
var errDevice = errors.New("device failure")

// opKind identifies a recorded strip operation.
type opKind string

const (
	opSet  opKind = "set"
	opFill opKind = "fill"
	opShow opKind = "show"
)

// op is one recorded strip operation.
type op struct {
	kind  opKind
	index int
	color led.Color
	show  bool
}

// fakeStrip is an in-package led.Strip that records every operation so
// tests can assert exact write sequences. failOn injects a device error
// on the nth operation (1-based; 0 disables).
type fakeStrip struct {
	mu      sync.Mutex
	numLeds int
	frame   []led.Color
	pending []led.Color
	ops     []op
	failOn  int
	count   int
}

func newFakeStrip(numLeds int) *fakeStrip {
	return &fakeStrip{
		numLeds: numLeds,
		frame:   make([]led.Color, numLeds),
		pending: make([]led.Color, numLeds),
	}
}

func (f *fakeStrip) NumLeds() int { return f.numLeds }

func (f *fakeStrip) SetLed(index int, c led.Color, show bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.nextOp(); err != nil {
		return err
	}
	f.ops = append(f.ops, op{kind: opSet, index: index, color: c, show: show})
	f.pending[index] = c
	if show {
		f.frame[index] = c
	}
	return nil
}

func (f *fakeStrip) Fill(c led.Color) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.nextOp(); err != nil {
		return err
	}
	f.ops = append(f.ops, op{kind: opFill, color: c})
	for i := range f.frame {
		f.frame[i] = c
		f.pending[i] = c
	}
	return nil
}

func (f *fakeStrip) Show() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.nextOp(); err != nil {
		return err
	}
	f.ops = append(f.ops, op{kind: opShow})
	copy(f.frame, f.pending)
	return nil
}

// nextOp advances the operation counter and injects a failure when
// configured. Caller holds f.mu.
func (f *fakeStrip) nextOp() error {
	f.count++
	if f.failOn > 0 && f.count >= f.failOn {
		return errDevice
	}
	return nil
}

// recorded returns a copy of the operation log.
func (f *fakeStrip) recorded() []op {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]op, len(f.ops))
	copy(ops, f.ops)
	return ops
}

// fills returns the colours of all Fill operations in order.
func (f *fakeStrip) fills() []led.Color {
	var colors []led.Color
	for _, o := range f.recorded() {
		if o.kind == opFill {
			colors = append(colors, o.color)
		}
	}
	return colors
}

// snapshot returns a copy of the visible frame.
func (f *fakeStrip) snapshot() []led.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	frame := make([]led.Color, len(f.frame))
	copy(frame, f.frame)
	return frame
}

// allOff reports whether every visible LED is off.
func (f *fakeStrip) allOff() bool {
	for _, c := range f.snapshot() {
		if !c.IsOff() {
			return false
		}
	}
	return true
}

// captureLogger records Warn messages for assertion.
type captureLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Info(string, ...any)  {}
func (l *captureLogger) Error(string, ...any) {}

func (l *captureLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *captureLogger) warnCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.warns)
}

// runAsync starts the animation on a goroutine and returns a channel
// that delivers Start's result.
func runAsync(a Animation, timeout time.Duration, oneShot bool) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- a.Start(timeout, oneShot)
	}()
	return done
}

// waitDone fails the test via the returned bool when Start does not
// return within the allowance.
func waitDone(done <-chan error, allowance time.Duration) (error, bool) {
	select {
	case err := <-done:
		return err, true
	case <-time.After(allowance):
		return nil, false
	}
}
