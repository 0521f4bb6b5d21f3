package animation

import (
	"testing"
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

func TestChase_OneShotSweep(t *testing.T) {
	strip := newFakeStrip(4)
	a := NewChase(strip, led.Red, led.Black)
	a.StepDelay = time.Millisecond

	if err := a.Start(0, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ops := strip.recorded()

	// Background fill, 4 foreground/background pairs in index order,
	// final blank.
	if len(ops) != 10 {
		t.Fatalf("recorded %d ops, want 10: %+v", len(ops), ops)
	}
	if ops[0].kind != opFill || ops[0].color != led.Black {
		t.Errorf("ops[0] = %+v, want background fill", ops[0])
	}
	for i := 0; i < 4; i++ {
		fg := ops[1+2*i]
		bg := ops[2+2*i]
		if fg.kind != opSet || fg.index != i || fg.color != led.Red {
			t.Errorf("pair %d foreground = %+v", i, fg)
		}
		if bg.kind != opSet || bg.index != i || bg.color != led.Black {
			t.Errorf("pair %d background = %+v", i, bg)
		}
	}
	last := ops[len(ops)-1]
	if last.kind != opFill || !last.color.IsOff() {
		t.Errorf("final op = %+v, want off fill", last)
	}
}

func TestChase_BackgroundShownBetweenSteps(t *testing.T) {
	strip := newFakeStrip(3)
	a := NewChase(strip, led.White, led.Blue)
	a.StepDelay = time.Millisecond

	if err := a.Start(0, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ops := strip.recorded()
	if ops[0].color != led.Blue {
		t.Errorf("initial fill = %v, want background blue", ops[0].color)
	}
	// Every active LED is restored to background before the next one.
	for _, o := range ops[1 : len(ops)-1] {
		if o.kind == opSet && o.color != led.White && o.color != led.Blue {
			t.Errorf("unexpected colour in sweep: %+v", o)
		}
	}
}

func TestChase_StopMidSweep(t *testing.T) {
	strip := newFakeStrip(10)
	a := NewChase(strip, led.Red, led.Black)
	a.StepDelay = 50 * time.Millisecond

	done := runAsync(a, 0, false)
	time.Sleep(75 * time.Millisecond) // a couple of steps in
	start := time.Now()
	a.Stop()

	err, ok := waitDone(done, 2*time.Second)
	if !ok {
		t.Fatal("Start() did not return after Stop()")
	}
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Must return within roughly one wait step, not finish the sweep.
	if latency := time.Since(start); latency > 500*time.Millisecond {
		t.Errorf("Stop() latency = %v, want within one wait step", latency)
	}
	if !strip.allOff() {
		t.Error("strip not blanked after stop")
	}
}
