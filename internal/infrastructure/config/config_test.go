package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
service:
  id: strand-test
strip:
  driver: memory
  num_leds: 24
database:
  path: /tmp/strand-test.db
api:
  port: 9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.ID != "strand-test" {
		t.Errorf("Service.ID = %q, want strand-test", cfg.Service.ID)
	}
	if cfg.Strip.NumLeds != 24 {
		t.Errorf("Strip.NumLeds = %d, want 24", cfg.Strip.NumLeds)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	// Unspecified fields keep defaults.
	if cfg.API.Timeouts.Read != 30 {
		t.Errorf("API.Timeouts.Read = %d, want default 30", cfg.API.Timeouts.Read)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "strip: [not: valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STRAND_DATABASE_PATH", "/var/lib/strand/override.db")
	t.Setenv("STRAND_MQTT_HOST", "broker.example.com")
	t.Setenv("STRAND_STRIP_NUM_LEDS", "60")

	path := writeConfig(t, `
database:
  path: ./data/strand.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/var/lib/strand/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.MQTT.Broker.Host != "broker.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want env override", cfg.MQTT.Broker.Host)
	}
	if cfg.Strip.NumLeds != 60 {
		t.Errorf("Strip.NumLeds = %d, want env override 60", cfg.Strip.NumLeds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing service id",
			mutate:  func(c *Config) { c.Service.ID = "" },
			wantErr: "service.id",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "unknown strip driver",
			mutate:  func(c *Config) { c.Strip.Driver = "spi" },
			wantErr: "strip.driver",
		},
		{
			name:    "memory driver needs leds",
			mutate:  func(c *Config) { c.Strip.NumLeds = 0 },
			wantErr: "strip.num_leds",
		},
		{
			name: "gpio driver needs offsets",
			mutate: func(c *Config) {
				c.Strip.Driver = DriverGPIO
				c.Strip.GPIO.Offsets = nil
			},
			wantErr: "strip.gpio.offsets",
		},
		{
			name: "gpio threshold out of range",
			mutate: func(c *Config) {
				c.Strip.Driver = DriverGPIO
				c.Strip.GPIO.Offsets = []int{17, 27, 22}
				c.Strip.GPIO.OnThreshold = 1.5
			},
			wantErr: "on_threshold",
		},
		{
			name:    "bad qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name:    "bad api port",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: "api.port",
		},
		{
			name: "influx enabled without url",
			mutate: func(c *Config) {
				c.InfluxDB.Enabled = true
				c.InfluxDB.URL = ""
			},
			wantErr: "influxdb.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
