// Strand Core - LED Animation Engine
//
// This is the main entry point for the Strand Core application.
// Strand Core drives addressable and discrete LED strips with a library
// of animation patterns, controllable over HTTP, WebSocket, and MQTT.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/strandlabs/strand-core/internal/api"
	"github.com/strandlabs/strand-core/internal/infrastructure/config"
	"github.com/strandlabs/strand-core/internal/infrastructure/database"
	"github.com/strandlabs/strand-core/internal/infrastructure/influxdb"
	"github.com/strandlabs/strand-core/internal/infrastructure/logging"
	"github.com/strandlabs/strand-core/internal/infrastructure/mqtt"
	"github.com/strandlabs/strand-core/internal/led"
	"github.com/strandlabs/strand-core/internal/player"
	"github.com/strandlabs/strand-core/internal/preset"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error { //nolint:gocognit // startup wiring is inherently sequential
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Strand Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Build the LED strip driver
	strip, err := buildStrip(cfg.Strip)
	if err != nil {
		return fmt.Errorf("initialising LED strip: %w", err)
	}
	if closer, ok := strip.(io.Closer); ok {
		defer func() {
			log.Info("releasing LED strip")
			if closeErr := closer.Close(); closeErr != nil {
				log.Error("error releasing LED strip", "error", closeErr)
			}
		}()
	}
	log.Info("LED strip initialised",
		"driver", cfg.Strip.Driver,
		"num_leds", strip.NumLeds(),
	)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log.With("component", "mqtt"))
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Stores
	presetRepo := preset.NewSQLiteRepository(db.DB)
	history := player.NewSQLiteRecorder(db.DB)

	// WebSocket hub is shared between the API server and the player so
	// state changes reach browser clients without a round trip.
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	// Observers are interface-typed: leave them nil rather than wrapping
	// a nil client.
	var publisher player.Publisher
	if mqttClient != nil {
		publisher = &playerPublisher{client: mqttClient}
	}
	var metrics player.Metrics
	if influxClient != nil {
		metrics = influxClient
	}

	// Animation player
	pl := player.New(strip, log, publisher, metrics, history, hub)
	defer func() {
		log.Info("shutting down player")
		if closeErr := pl.Close(); closeErr != nil {
			log.Error("error closing player", "error", closeErr)
		}
	}()
	log.Info("player initialised")

	// Remote commands over MQTT
	if mqttClient != nil {
		commander := player.NewCommander(pl, presetRepo, log)
		commandTopic := mqtt.Topics{}.PlayerCommand()
		if subErr := mqttClient.Subscribe(commandTopic, byte(cfg.MQTT.QoS), commander.Handle); subErr != nil {
			return fmt.Errorf("subscribing to player commands: %w", subErr)
		}
		log.Info("listening for player commands", "topic", commandTopic)
	}

	// HTTP API server
	apiServer, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Logger:      log,
		Player:      pl,
		Presets:     presetRepo,
		History:     history,
		Strip:       strip,
		MQTT:        mqttClient,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"tls", cfg.API.TLS.Enabled,
	)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. Player (blanks the strip)
	// 3. InfluxDB (if enabled)
	// 4. MQTT (if enabled)
	// 5. LED strip driver
	// 6. Database

	log.Info("Strand Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses STRAND_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("STRAND_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// buildStrip constructs the configured LED strip driver.
func buildStrip(cfg config.StripConfig) (led.Strip, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return led.NewMemory(cfg.NumLeds), nil
	case config.DriverGPIO:
		gpio, err := led.NewGPIO(led.GPIOConfig{
			Chip:        cfg.GPIO.Chip,
			Offsets:     cfg.GPIO.Offsets,
			OnThreshold: cfg.GPIO.OnThreshold,
			Consumer:    "strand-core",
		})
		if err != nil {
			return nil, err
		}
		return gpio, nil
	default:
		return nil, fmt.Errorf("unknown strip driver %q", cfg.Driver)
	}
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}

// playerPublisher adapts the infrastructure MQTT client to the player's
// Publisher interface: state is retained on the state topic, events are
// fire-and-forget on per-type event topics.
type playerPublisher struct {
	client *mqtt.Client
}

// PublishState implements player.Publisher.
func (p *playerPublisher) PublishState(payload []byte) error {
	return p.client.PublishRetained(mqtt.Topics{}.PlayerState(), payload)
}

// PublishEvent implements player.Publisher.
func (p *playerPublisher) PublishEvent(eventType string, payload []byte) error {
	return p.client.Publish(mqtt.Topics{}.PlayerEvent(eventType), payload, 0, false)
}
