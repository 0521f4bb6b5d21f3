package led

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
)

// defaultOnThreshold is the channel level above which a discrete LED is
// driven high when no threshold is configured.
const defaultOnThreshold = 0.5

// GPIOConfig configures a GPIO-backed strip.
type GPIOConfig struct {
	// Chip is the gpiochip device name, e.g. "gpiochip0".
	Chip string

	// Offsets are the line offsets driving the LEDs, one per LED,
	// in strip order.
	Offsets []int

	// OnThreshold is the colour channel level above which a LED is
	// switched on. Discrete LEDs have no brightness control, so any
	// channel exceeding the threshold lights the LED.
	OnThreshold float64

	// Consumer is the consumer label reported to the kernel.
	Consumer string
}

// GPIO drives discrete on/off LEDs through the Linux GPIO character
// device. Each LED occupies one line; colours are thresholded to a
// binary on/off level since plain LEDs cannot mix channels.
type GPIO struct {
	mu        sync.Mutex
	lines     *gpiocdev.Lines
	values    []int
	pending   []int
	threshold float64
	closed    bool
}

// NewGPIO requests the configured lines as outputs, all driven low.
//
// Returns:
//   - *GPIO: Ready strip with every LED off
//   - error: If no lines are configured or the line request fails
func NewGPIO(cfg GPIOConfig) (*GPIO, error) {
	if len(cfg.Offsets) == 0 {
		return nil, ErrNoLines
	}
	threshold := cfg.OnThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultOnThreshold
	}
	consumer := cfg.Consumer
	if consumer == "" {
		consumer = "strand-core"
	}

	initial := make([]int, len(cfg.Offsets))
	lines, err := gpiocdev.RequestLines(cfg.Chip, cfg.Offsets,
		gpiocdev.AsOutput(initial...),
		gpiocdev.WithConsumer(consumer),
	)
	if err != nil {
		return nil, fmt.Errorf("requesting gpio lines on %s: %w", cfg.Chip, err)
	}

	return &GPIO{
		lines:     lines,
		values:    make([]int, len(cfg.Offsets)),
		pending:   make([]int, len(cfg.Offsets)),
		threshold: threshold,
	}, nil
}

// NumLeds returns the number of configured lines.
func (g *GPIO) NumLeds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.values)
}

// SetLed drives a single LED, immediately when show is true, otherwise
// buffered until the next Show.
func (g *GPIO) SetLed(index int, c Color, show bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	if index < 0 || index >= len(g.values) {
		return fmt.Errorf("%w: %d (strip has %d)", ErrIndexOutOfRange, index, len(g.values))
	}
	g.pending[index] = g.level(c)
	if show {
		return g.flushLocked()
	}
	return nil
}

// Fill drives every LED to the same level and shows immediately.
func (g *GPIO) Fill(c Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	level := g.level(c)
	for i := range g.pending {
		g.pending[i] = level
	}
	return g.flushLocked()
}

// Show flushes deferred writes to the lines.
func (g *GPIO) Show() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	return g.flushLocked()
}

// Close drives all lines low and releases them.
func (g *GPIO) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	// Best-effort blank before release; the kernel keeps the last level.
	for i := range g.pending {
		g.pending[i] = 0
	}
	_ = g.lines.SetValues(g.pending) //nolint:errcheck // Best effort blank on close

	if err := g.lines.Close(); err != nil {
		return fmt.Errorf("closing gpio lines: %w", err)
	}
	return nil
}

// level thresholds a colour to a binary line level.
func (g *GPIO) level(c Color) int {
	if c.R > g.threshold || c.G > g.threshold || c.B > g.threshold {
		return 1
	}
	return 0
}

// flushLocked writes pending levels to the lines. Caller holds g.mu.
func (g *GPIO) flushLocked() error {
	if err := g.lines.SetValues(g.pending); err != nil {
		return fmt.Errorf("writing gpio lines: %w", err)
	}
	copy(g.values, g.pending)
	return nil
}
