package led

import (
	"errors"
	"testing"
)

func TestMemory_SetLedImmediate(t *testing.T) {
	m := NewMemory(4)

	if err := m.SetLed(2, Red, true); err != nil {
		t.Fatalf("SetLed() error = %v", err)
	}

	frame := m.Snapshot()
	if frame[2] != Red {
		t.Errorf("frame[2] = %v, want %v", frame[2], Red)
	}
	for _, i := range []int{0, 1, 3} {
		if !frame[i].IsOff() {
			t.Errorf("frame[%d] = %v, want off", i, frame[i])
		}
	}
}

func TestMemory_DeferredShow(t *testing.T) {
	m := NewMemory(3)

	if err := m.SetLed(0, Green, false); err != nil {
		t.Fatalf("SetLed() error = %v", err)
	}
	if err := m.SetLed(1, Green, false); err != nil {
		t.Fatalf("SetLed() error = %v", err)
	}

	// Nothing visible until Show.
	for i, c := range m.Snapshot() {
		if !c.IsOff() {
			t.Errorf("before Show: frame[%d] = %v, want off", i, c)
		}
	}

	if err := m.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	frame := m.Snapshot()
	if frame[0] != Green || frame[1] != Green {
		t.Errorf("after Show: frame = %v", frame)
	}
	if !frame[2].IsOff() {
		t.Errorf("after Show: frame[2] = %v, want off", frame[2])
	}
}

func TestMemory_Fill(t *testing.T) {
	m := NewMemory(5)

	if err := m.Fill(Blue); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	for i, c := range m.Snapshot() {
		if c != Blue {
			t.Errorf("frame[%d] = %v, want %v", i, c, Blue)
		}
	}

	if err := m.Fill(Black); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	for i, c := range m.Snapshot() {
		if !c.IsOff() {
			t.Errorf("frame[%d] = %v, want off", i, c)
		}
	}
}

func TestMemory_IndexOutOfRange(t *testing.T) {
	m := NewMemory(2)

	for _, index := range []int{-1, 2, 100} {
		if err := m.SetLed(index, Red, true); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetLed(%d) error = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestMemory_GenerationAdvances(t *testing.T) {
	m := NewMemory(2)
	start := m.Generation()

	if err := m.SetLed(0, Red, false); err != nil {
		t.Fatalf("SetLed() error = %v", err)
	}
	if got := m.Generation(); got != start {
		t.Errorf("deferred write advanced generation: %d -> %d", start, got)
	}

	if err := m.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got := m.Generation(); got == start {
		t.Error("Show() did not advance generation")
	}
}
