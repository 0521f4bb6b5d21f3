package led

import (
	"fmt"
	"sync"
)

// Memory is an in-memory Strip backed by a plain frame buffer.
//
// It keeps two buffers: the shown frame and a pending frame for writes
// deferred with show=false. Show copies pending onto shown, matching the
// deferred-write semantics of real pixel drivers.
//
// Thread Safety: all methods are safe for concurrent use; Snapshot may
// be polled from another goroutine while an animation writes.
type Memory struct {
	mu      sync.RWMutex
	shown   []Color
	pending []Color
	gen     uint64
}

// NewMemory creates an in-memory strip with numLeds LEDs, all off.
func NewMemory(numLeds int) *Memory {
	if numLeds < 0 {
		numLeds = 0
	}
	return &Memory{
		shown:   make([]Color, numLeds),
		pending: make([]Color, numLeds),
	}
}

// NumLeds returns the number of LEDs.
func (m *Memory) NumLeds() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.shown)
}

// SetLed sets a single LED, immediately when show is true, otherwise
// buffered until the next Show.
func (m *Memory) SetLed(index int, c Color, show bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.shown) {
		return fmt.Errorf("%w: %d (strip has %d)", ErrIndexOutOfRange, index, len(m.shown))
	}
	m.pending[index] = c
	if show {
		m.shown[index] = c
		m.gen++
	}
	return nil
}

// Fill sets every LED to c and shows immediately.
func (m *Memory) Fill(c Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.shown {
		m.shown[i] = c
		m.pending[i] = c
	}
	m.gen++
	return nil
}

// Show flushes deferred writes onto the visible frame.
func (m *Memory) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.shown, m.pending)
	m.gen++
	return nil
}

// Snapshot returns a copy of the currently shown frame.
func (m *Memory) Snapshot() []Color {
	m.mu.RLock()
	defer m.mu.RUnlock()

	frame := make([]Color, len(m.shown))
	copy(frame, m.shown)
	return frame
}

// Generation returns a counter that increments on every visible change.
// Pollers use it to skip unchanged frames.
func (m *Memory) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}
