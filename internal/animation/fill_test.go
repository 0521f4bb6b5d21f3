package animation

import (
	"testing"
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

func TestFill_PersistsResult(t *testing.T) {
	strip := newFakeStrip(5)
	a := NewFill(strip, led.Green, false)
	a.StepDelay = time.Millisecond

	if err := a.Start(0, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i, c := range strip.snapshot() {
		if c != led.Green {
			t.Errorf("frame[%d] = %v, want green", i, c)
		}
	}
	// The persistent pattern never blanks.
	for _, o := range strip.recorded() {
		if o.kind == opFill {
			t.Errorf("fill issued a whole-strip fill: %+v", o)
		}
	}
}

func TestFill_Order(t *testing.T) {
	tests := []struct {
		name    string
		reverse bool
		want    []int
	}{
		{name: "forward", reverse: false, want: []int{0, 1, 2, 3}},
		{name: "reverse", reverse: true, want: []int{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strip := newFakeStrip(4)
			a := NewFill(strip, led.Red, tt.reverse)
			a.StepDelay = time.Millisecond

			if err := a.Start(0, true); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			ops := strip.recorded()
			if len(ops) != len(tt.want) {
				t.Fatalf("recorded %d ops, want %d", len(ops), len(tt.want))
			}
			for i, o := range ops {
				if o.index != tt.want[i] {
					t.Errorf("op %d index = %d, want %d", i, o.index, tt.want[i])
				}
			}
		})
	}
}

func TestFill_WarnsOnUnsupportedParams(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		oneShot   bool
		wantWarns int
	}{
		{name: "conventional", timeout: 0, oneShot: true, wantWarns: 0},
		{name: "with timeout", timeout: time.Second, oneShot: true, wantWarns: 1},
		{name: "continuous request", timeout: 0, oneShot: false, wantWarns: 1},
		{name: "both", timeout: time.Second, oneShot: false, wantWarns: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strip := newFakeStrip(3)
			logger := &captureLogger{}
			a := NewFill(strip, led.Red, false)
			a.SetLogger(logger)
			a.StepDelay = time.Millisecond

			if err := a.Start(tt.timeout, tt.oneShot); err != nil {
				t.Fatalf("Start() error = %v", err)
			}

			if got := logger.warnCount(); got != tt.wantWarns {
				t.Errorf("warn count = %d, want %d", got, tt.wantWarns)
			}
			// A single pass regardless of the requested mode.
			if got := len(strip.recorded()); got != 3 {
				t.Errorf("recorded %d ops, want 3", got)
			}
		})
	}
}

func TestFill_StopInterruptsPass(t *testing.T) {
	strip := newFakeStrip(10)
	a := NewFill(strip, led.Red, false)
	a.StepDelay = 50 * time.Millisecond

	done := runAsync(a, 0, true)
	time.Sleep(75 * time.Millisecond)
	a.Stop()

	err, ok := waitDone(done, 2*time.Second)
	if !ok {
		t.Fatal("Start() did not return after Stop()")
	}
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// An interrupted fill leaves the written prefix lit.
	frame := strip.snapshot()
	if frame[0] != led.Red {
		t.Error("frame[0] not lit after interrupted fill")
	}
	if frame[9] == led.Red {
		t.Error("frame[9] lit; pass should have been interrupted")
	}
}
