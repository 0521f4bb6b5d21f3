package influxdb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second

	// Fallbacks when the config leaves batching unset.
	defaultBatchSize     = 100
	defaultFlushSeconds  = 10
	millisecondsInSecond = 1000
)

// Client records animation run telemetry in InfluxDB v2. Points are
// batched by the underlying write API and flushed in the background, so
// WriteRunStarted and WriteRunFinished never block the player's run loop.
// Asynchronous write failures surface through SetOnError.
//
// All methods are safe for concurrent use.
type Client struct {
	influx   influxdb2.Client
	writeAPI api.WriteAPI
	cfg      config.InfluxDBConfig

	connected atomic.Bool

	mu      sync.Mutex
	onError func(err error)
}

// Connect builds a client from the influxdb section of config.yaml and
// verifies the server with a ping. Returns ErrDisabled when the section
// is switched off so the caller can treat telemetry as optional.
func Connect(cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	flushSeconds := cfg.FlushInterval
	if flushSeconds <= 0 {
		flushSeconds = defaultFlushSeconds
	}

	// #nosec G115 -- both values forced positive above
	influx := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushSeconds)*millisecondsInSecond))

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	healthy, err := influx.Ping(ctx)
	if err != nil {
		influx.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		influx.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	c := &Client{
		influx:   influx,
		writeAPI: influx.WriteAPI(cfg.Org, cfg.Bucket),
		cfg:      cfg,
	}
	c.connected.Store(true)

	go c.forwardWriteErrors(c.writeAPI.Errors())

	return c, nil
}

// forwardWriteErrors drains the write API's error channel into the
// registered callback. The channel closes when the client closes.
func (c *Client) forwardWriteErrors(errs <-chan error) {
	for err := range errs {
		c.mu.Lock()
		notify := c.onError
		c.mu.Unlock()

		if notify != nil {
			notify(err)
		}
	}
}

// SetOnError registers a callback for asynchronous write failures,
// typically wired to the logger.
func (c *Client) SetOnError(fn func(err error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// IsConnected reports the last known connection state. HealthCheck pings
// the server for a live answer.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	healthy, err := c.influx.Ping(pingCtx)
	if err != nil {
		return fmt.Errorf("influxdb health check: %w", err)
	}
	if !healthy {
		return fmt.Errorf("influxdb health check: server not healthy")
	}
	return nil
}

// Flush sends any buffered points now. Used in tests and before shutdown;
// a closed client ignores it.
func (c *Client) Flush() {
	if c.writeAPI == nil || !c.connected.Load() {
		return
	}
	c.writeAPI.Flush()
}

// Close flushes buffered points and shuts the client down.
func (c *Client) Close() error {
	if c.influx == nil {
		return nil
	}

	c.connected.Store(false)
	c.writeAPI.Flush()
	c.influx.Close()
	return nil
}
