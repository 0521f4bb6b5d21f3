package led

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{name: "named red", input: "red", want: Red},
		{name: "named off", input: "off", want: Black},
		{name: "named uppercase", input: "CYAN", want: Cyan},
		{name: "named padded", input: "  white ", want: White},
		{name: "hex with hash", input: "#ff0000", want: Red},
		{name: "hex without hash", input: "00ff00", want: Green},
		{name: "hex mixed", input: "#FF00FF", want: Magenta},
		{name: "empty", input: "", wantErr: true},
		{name: "short hex", input: "#fff", wantErr: true},
		{name: "garbage", input: "not-a-colour", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseColor(%q) expected error, got nil", tt.input)
				}
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor_HexChannels(t *testing.T) {
	got, err := ParseColor("#804020")
	if err != nil {
		t.Fatalf("ParseColor() error = %v", err)
	}
	if math.Abs(got.R-0x80/255.0) > 1e-9 ||
		math.Abs(got.G-0x40/255.0) > 1e-9 ||
		math.Abs(got.B-0x20/255.0) > 1e-9 {
		t.Errorf("ParseColor(#804020) = %+v", got)
	}
}

func TestColor_Scaled(t *testing.T) {
	tests := []struct {
		name       string
		brightness float64
		want       Color
	}{
		{name: "full", brightness: 1, want: Red},
		{name: "half", brightness: 0.5, want: Color{R: 0.5}},
		{name: "zero", brightness: 0, want: Black},
		{name: "clamped low", brightness: -0.3, want: Black},
		{name: "clamped high", brightness: 1.7, want: Red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Red.Scaled(tt.brightness); got != tt.want {
				t.Errorf("Scaled(%v) = %v, want %v", tt.brightness, got, tt.want)
			}
		})
	}
}

func TestColor_IsOff(t *testing.T) {
	if !Black.IsOff() {
		t.Error("Black.IsOff() = false, want true")
	}
	if Red.IsOff() {
		t.Error("Red.IsOff() = true, want false")
	}
}

func TestColor_Hex(t *testing.T) {
	if got := Red.Hex(); got != "#ff0000" {
		t.Errorf("Red.Hex() = %q, want %q", got, "#ff0000")
	}
	if got := Black.Hex(); got != "#000000" {
		t.Errorf("Black.Hex() = %q, want %q", got, "#000000")
	}
}

func TestColor_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Yellow)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"#ffff00"` {
		t.Errorf("Marshal(Yellow) = %s, want %q", data, `"#ffff00"`)
	}

	var c Color
	if err := json.Unmarshal([]byte(`"cyan"`), &c); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if c != Cyan {
		t.Errorf("Unmarshal(cyan) = %v, want %v", c, Cyan)
	}
}

func TestColor_YAMLUnmarshal(t *testing.T) {
	var cfg struct {
		Color Color `yaml:"color"`
	}
	if err := yaml.Unmarshal([]byte("color: \"#ff8000\"\n"), &cfg); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if cfg.Color.Hex() != "#ff8000" {
		t.Errorf("yaml colour = %v, want #ff8000", cfg.Color)
	}
}
