package animation

import (
	"testing"
	"time"

	"github.com/strandlabs/strand-core/internal/led"
)

// frames splits the recorded ops into per-Show frames of lit indices.
func litFrames(strip *fakeStrip) [][]int {
	var frames [][]int
	var current []int
	for _, o := range strip.recorded() {
		switch o.kind {
		case opSet:
			if !o.color.IsOff() {
				current = append(current, o.index)
			}
		case opShow:
			frames = append(frames, current)
			current = nil
		case opFill:
			current = nil
		}
	}
	return frames
}

func TestAlternating_OneShotParityPartition(t *testing.T) {
	strip := newFakeStrip(5)
	a := NewAlternating(strip, led.White)
	a.Delay = time.Millisecond

	if err := a.Start(0, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	frames := litFrames(strip)
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want exactly 2 for one cycle", len(frames))
	}

	wantEvens := []int{0, 2, 4}
	wantOdds := []int{1, 3}
	assertIndices(t, "evens frame", frames[0], wantEvens)
	assertIndices(t, "odds frame", frames[1], wantOdds)

	// Every LED lit in exactly one of the two phases.
	seen := make(map[int]int)
	for _, frame := range frames {
		for _, i := range frame {
			seen[i]++
		}
	}
	for i := 0; i < 5; i++ {
		if seen[i] != 1 {
			t.Errorf("led %d lit %d times across the cycle, want 1", i, seen[i])
		}
	}

	if !strip.allOff() {
		t.Error("strip not off after one-shot alternating")
	}
}

func assertIndices(t *testing.T, label string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s = %v, want %v", label, got, want)
		}
	}
}

func TestAlternating_FramesAreFlushedAtomically(t *testing.T) {
	strip := newFakeStrip(4)
	a := NewAlternating(strip, led.Red)
	a.Delay = time.Millisecond

	if err := a.Start(0, true); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// All per-LED writes are deferred; only Show makes them visible.
	for _, o := range strip.recorded() {
		if o.kind == opSet && o.show {
			t.Errorf("immediate write in alternating frame: %+v", o)
		}
	}
}

func TestAlternating_StopBlanksStrip(t *testing.T) {
	strip := newFakeStrip(6)
	a := NewAlternating(strip, led.Yellow)
	a.Delay = 50 * time.Millisecond

	done := runAsync(a, 0, false)
	time.Sleep(75 * time.Millisecond)
	a.Stop()

	err, ok := waitDone(done, 2*time.Second)
	if !ok {
		t.Fatal("Start() did not return after Stop()")
	}
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strip.allOff() {
		t.Error("strip not off after stop")
	}
}
