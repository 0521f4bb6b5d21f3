package animation

import (
	"sync"
	"time"
)

// stopSignal is the cancellable-wait primitive every animation instance
// owns. A running pattern sleeps with Wait; any other goroutine raises
// the signal with Set, which wakes an in-progress Wait immediately and
// makes every later Wait return without blocking.
//
// The channel close provides the happens-before edge: a Wait issued
// after Set has returned is guaranteed to observe the signal. Clear
// rearms the signal for instance reuse; Start calls it at entry so a
// stopped animation can be restarted cleanly.
//
// The zero value is ready to use.
type stopSignal struct {
	mu  sync.Mutex
	ch  chan struct{}
	set bool
}

// Set raises the signal. Idempotent; safe from any goroutine.
func (s *stopSignal) Set() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		return
	}
	s.set = true
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	close(s.ch)
}

// Clear rearms the signal so a subsequent Wait blocks again.
func (s *stopSignal) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = false
	s.ch = make(chan struct{})
}

// IsSet reports whether the signal has been raised.
func (s *stopSignal) IsSet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set
}

// Wait blocks for up to d, returning true immediately if the signal is
// (or becomes) raised, and false once the full duration has elapsed.
func (s *stopSignal) Wait(d time.Duration) bool {
	s.mu.Lock()
	if s.set {
		s.mu.Unlock()
		return true
	}
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	ch := s.ch
	s.mu.Unlock()

	if d <= 0 {
		return false
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}
