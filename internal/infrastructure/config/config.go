package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Strip driver names accepted by StripConfig.Driver.
const (
	DriverMemory = "memory"
	DriverGPIO   = "gpio"
)

// Config is the root configuration structure for Strand Core.
// All configuration is loaded from YAML and can be overridden by
// environment variables.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Strip     StripConfig     `yaml:"strip"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig identifies this Strand Core instance.
type ServiceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StripConfig selects and configures the LED strip driver.
type StripConfig struct {
	// Driver is "memory" (simulator) or "gpio".
	Driver string `yaml:"driver"`

	// NumLeds is the strip length for the memory driver. The gpio
	// driver derives its length from the configured offsets.
	NumLeds int `yaml:"num_leds"`

	GPIO GPIOStripConfig `yaml:"gpio"`
}

// GPIOStripConfig configures the gpio strip driver.
type GPIOStripConfig struct {
	// Chip is the gpiochip device name, e.g. "gpiochip0".
	Chip string `yaml:"chip"`

	// Offsets are the output line offsets, one per LED, in strip order.
	Offsets []int `yaml:"offsets"`

	// OnThreshold is the colour channel level above which a discrete
	// LED is driven high (0 < threshold <= 1).
	OnThreshold float64 `yaml:"on_threshold"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings (seconds).
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings (seconds).
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`

	// PreviewInterval is how often (milliseconds) frame previews are
	// broadcast when the memory driver is active. 0 disables previews.
	PreviewInterval int `yaml:"preview_interval"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides.
//
// Environment variables follow the pattern STRAND_SECTION_KEY, e.g.
// STRAND_DATABASE_PATH, STRAND_MQTT_HOST.
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be read or parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults: a 12-LED
// simulated strip, local-only API, MQTT and InfluxDB disabled.
func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			ID:   "strand-001",
			Name: "Strand Core",
		},
		Strip: StripConfig{
			Driver:  DriverMemory,
			NumLeds: 12,
			GPIO: GPIOStripConfig{
				Chip:        "gpiochip0",
				OnThreshold: 0.5,
			},
		},
		Database: DatabaseConfig{
			Path:        "./data/strand.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "strand-core",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8090,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:            "/ws",
			MaxMessageSize:  8192,
			PingInterval:    30,
			PongTimeout:     10,
			PreviewInterval: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies STRAND_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STRAND_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("STRAND_STRIP_DRIVER"); v != "" {
		cfg.Strip.Driver = v
	}
	if v := os.Getenv("STRAND_STRIP_NUM_LEDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Strip.NumLeds = n
		}
	}
	if v := os.Getenv("STRAND_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("STRAND_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("STRAND_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}
	if v := os.Getenv("STRAND_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("STRAND_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Service.ID == "" {
		errs = append(errs, "service.id is required")
	}
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	switch c.Strip.Driver {
	case DriverMemory:
		if c.Strip.NumLeds < 1 {
			errs = append(errs, "strip.num_leds must be at least 1")
		}
	case DriverGPIO:
		if c.Strip.GPIO.Chip == "" {
			errs = append(errs, "strip.gpio.chip is required for the gpio driver")
		}
		if len(c.Strip.GPIO.Offsets) == 0 {
			errs = append(errs, "strip.gpio.offsets must list at least one line")
		}
		if c.Strip.GPIO.OnThreshold <= 0 || c.Strip.GPIO.OnThreshold > 1 {
			errs = append(errs, "strip.gpio.on_threshold must be in (0, 1]")
		}
	default:
		errs = append(errs, fmt.Sprintf("strip.driver %q is not one of: memory, gpio", c.Strip.Driver))
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}
	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// PreviewInterval returns the WebSocket frame preview interval.
func (c *Config) PreviewInterval() time.Duration {
	return time.Duration(c.WebSocket.PreviewInterval) * time.Millisecond
}
