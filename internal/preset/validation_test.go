package preset

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	valid := func() *Preset {
		return &Preset{
			Name:      "boot-glow",
			Animation: "breathe",
			Timeout:   5 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Preset)
		wantErr string
	}{
		{
			name:   "valid preset",
			mutate: func(p *Preset) {},
		},
		{
			name:    "empty name",
			mutate:  func(p *Preset) { p.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "name with spaces",
			mutate:  func(p *Preset) { p.Name = "Boot Glow" },
			wantErr: "lowercase",
		},
		{
			name:    "name too long",
			mutate:  func(p *Preset) { p.Name = strings.Repeat("a", maxNameLength+1) },
			wantErr: "exceeds",
		},
		{
			name:    "unknown animation",
			mutate:  func(p *Preset) { p.Animation = "sparkle" },
			wantErr: "unknown animation",
		},
		{
			name:    "negative timeout",
			mutate:  func(p *Preset) { p.Timeout = -time.Second },
			wantErr: "timeout",
		},
		{
			name:    "negative num_blinks",
			mutate:  func(p *Preset) { p.Params.NumBlinks = -1 },
			wantErr: "num_blinks",
		},
		{
			name:    "description too long",
			mutate:  func(p *Preset) { p.Description = strings.Repeat("x", maxDescriptionLength+1) },
			wantErr: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := Validate(p)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidPreset) {
				t.Errorf("Validate() error = %v, want ErrInvalidPreset", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("Validate(nil) error = %v, want ErrInvalidPreset", err)
	}
}

func TestValidateAllRegisteredAnimations(t *testing.T) {
	for _, name := range []string{"breathe", "chase", "fill", "refill", "bounce", "blink", "alternating"} {
		p := &Preset{Name: "p-" + name, Animation: name}
		if err := Validate(p); err != nil {
			t.Errorf("Validate(%s preset) error = %v, want nil", name, err)
		}
	}
}
