package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

// record logs one entry through a handler built from cfg and returns the
// raw output.
func record(t *testing.T, cfg config.LoggingConfig, fn func(*Logger)) string {
	t.Helper()

	var buf bytes.Buffer
	log := &Logger{Logger: slog.New(newHandler(&buf, cfg, "0.1.0-test"))}
	fn(log)
	return buf.String()
}

func TestJSONRecord_CarriesServiceFields(t *testing.T) {
	out := record(t, config.LoggingConfig{Level: "info", Format: "json"},
		func(log *Logger) {
			log.Info("animation started", "animation", "breathe", "run_id", "run-1")
		})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}

	want := map[string]string{
		"service":   "strand-core",
		"version":   "0.1.0-test",
		"msg":       "animation started",
		"animation": "breathe",
		"run_id":    "run-1",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %q", k, entry[k], v)
		}
	}
}

func TestTextFormat(t *testing.T) {
	out := record(t, config.LoggingConfig{Level: "info", Format: "text"},
		func(log *Logger) {
			log.Info("strip ready", "num_leds", 12)
		})

	if strings.Contains(out, "{") {
		t.Errorf("text format produced JSON-looking output: %s", out)
	}
	for _, want := range []string{"service=strand-core", "strip ready", "num_leds=12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	out := record(t, config.LoggingConfig{Level: "error", Format: "json"},
		func(log *Logger) {
			log.Info("suppressed")
			log.Error("broker unreachable")
		})

	if strings.Contains(out, "suppressed") {
		t.Error("info record emitted at error level")
	}
	if !strings.Contains(out, "broker unreachable") {
		t.Error("error record missing at error level")
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := levelFor(tt.name); got != tt.want {
			t.Errorf("levelFor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWith_AddsComponent(t *testing.T) {
	out := record(t, config.LoggingConfig{Level: "info", Format: "json"},
		func(log *Logger) {
			log.With("component", "mqtt").Info("connected")
		})

	var entry map[string]any
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "mqtt" {
		t.Errorf("component = %v, want mqtt", entry["component"])
	}
}

func TestNewAndDefault(t *testing.T) {
	if New(config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"}, "1.0.0") == nil {
		t.Fatal("New returned nil")
	}
	if Default() == nil {
		t.Fatal("Default returned nil")
	}
}
