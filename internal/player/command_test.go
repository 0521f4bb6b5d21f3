package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/strandlabs/strand-core/internal/animation"
	"github.com/strandlabs/strand-core/internal/led"
	"github.com/strandlabs/strand-core/internal/preset"
)

// fakePresets resolves presets from a fixed map.
type fakePresets struct {
	byName map[string]*preset.Preset
}

func (f *fakePresets) GetByName(_ context.Context, name string) (*preset.Preset, error) {
	p, ok := f.byName[name]
	if !ok {
		return nil, preset.ErrPresetNotFound
	}
	return p, nil
}

func newTestCommander(t *testing.T, presets PresetSource) (*Commander, *Player) {
	t.Helper()
	p := New(led.NewMemory(4), nil, nil, nil, nil, nil)
	t.Cleanup(func() { p.Close() })
	return NewCommander(p, presets, nil), p
}

func TestHandleMalformedPayload(t *testing.T) {
	c, _ := newTestCommander(t, nil)

	err := c.Handle("strand/player/command", []byte("{not json"))
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Handle() error = %v, want ErrInvalidCommand", err)
	}
}

func TestHandleUnknownAction(t *testing.T) {
	c, _ := newTestCommander(t, nil)

	err := c.Handle("strand/player/command", []byte(`{"action":"pause"}`))
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Handle() error = %v, want ErrInvalidCommand", err)
	}
}

func TestHandlePlayAnimation(t *testing.T) {
	c, p := newTestCommander(t, nil)

	payload := []byte(`{"action":"play","animation":"breathe","params":{"color":"blue"},"timeout_ms":60000}`)
	if err := c.Handle("strand/player/command", payload); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	status := p.Status()
	if !status.Playing {
		t.Fatal("Status.Playing = false after play command")
	}
	if status.Animation != "breathe" {
		t.Errorf("Status.Animation = %q, want breathe", status.Animation)
	}
	if status.TimeoutMs != 60000 {
		t.Errorf("Status.TimeoutMs = %d, want 60000", status.TimeoutMs)
	}
}

func TestHandlePlayMissingSelector(t *testing.T) {
	c, _ := newTestCommander(t, nil)

	err := c.Handle("strand/player/command", []byte(`{"action":"play"}`))
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Handle() error = %v, want ErrInvalidCommand", err)
	}
}

func TestHandlePlayUnknownAnimation(t *testing.T) {
	c, _ := newTestCommander(t, nil)

	err := c.Handle("strand/player/command", []byte(`{"action":"play","animation":"sparkle"}`))
	if !errors.Is(err, animation.ErrUnknownAnimation) {
		t.Errorf("Handle() error = %v, want ErrUnknownAnimation", err)
	}
}

func TestHandlePlayPreset(t *testing.T) {
	presets := &fakePresets{byName: map[string]*preset.Preset{
		"boot-glow": {
			ID:        "pre-boot",
			Name:      "boot-glow",
			Animation: "breathe",
			Params:    animation.Params{Color: led.Blue},
			Timeout:   30 * time.Second,
		},
	}}
	c, p := newTestCommander(t, presets)

	if err := c.Handle("strand/player/command", []byte(`{"action":"play","preset":"boot-glow"}`)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	status := p.Status()
	if status.Animation != "breathe" {
		t.Errorf("Status.Animation = %q, want breathe", status.Animation)
	}
	if status.PresetID != "pre-boot" {
		t.Errorf("Status.PresetID = %q, want pre-boot", status.PresetID)
	}
}

func TestHandlePlayPresetNotFound(t *testing.T) {
	c, _ := newTestCommander(t, &fakePresets{byName: map[string]*preset.Preset{}})

	err := c.Handle("strand/player/command", []byte(`{"action":"play","preset":"missing"}`))
	if !errors.Is(err, preset.ErrPresetNotFound) {
		t.Errorf("Handle() error = %v, want ErrPresetNotFound", err)
	}
}

func TestHandlePlayPresetWithoutSource(t *testing.T) {
	c, _ := newTestCommander(t, nil)

	err := c.Handle("strand/player/command", []byte(`{"action":"play","preset":"boot-glow"}`))
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Handle() error = %v, want ErrInvalidCommand", err)
	}
}

func TestHandleStop(t *testing.T) {
	c, p := newTestCommander(t, nil)

	// Stop with nothing playing is not an error for remote callers.
	if err := c.Handle("strand/player/command", []byte(`{"action":"stop"}`)); err != nil {
		t.Errorf("Handle(stop, idle) error = %v, want nil", err)
	}

	if err := c.Handle("strand/player/command", []byte(`{"action":"play","animation":"breathe"}`)); err != nil {
		t.Fatalf("Handle(play) error = %v", err)
	}
	if err := c.Handle("strand/player/command", []byte(`{"action":"stop"}`)); err != nil {
		t.Errorf("Handle(stop) error = %v", err)
	}
	if p.Status().Playing {
		t.Error("Status.Playing = true after stop command")
	}
}
