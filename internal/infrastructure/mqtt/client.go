package mqtt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

// Logger is the slice of logging.Logger the client needs. Declared here
// so this package does not import the logging package.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// MessageHandler receives inbound messages. Paho invokes handlers on its
// own goroutines, so they must not block for long. A returned error is
// logged and does not affect acknowledgement.
type MessageHandler func(topic string, payload []byte) error

// Client connects Strand Core to the MQTT broker. It publishes retained
// player state, run lifecycle events and strip frames, and subscribes to
// the command topic. Subscriptions are tracked so they survive a
// reconnect, and the broker announces our offline status via LWT if the
// connection drops without a graceful Close.
//
// All methods are safe for concurrent use.
type Client struct {
	paho pahomqtt.Client
	cfg  config.MQTTConfig

	connected atomic.Bool

	mu           sync.Mutex
	subs         map[string]subscription
	log          Logger
	onConnect    func()
	onDisconnect func(err error)
}

// subscription is what handleConnect needs to re-subscribe after a
// reconnect.
type subscription struct {
	qos     byte
	handler MessageHandler
}

// Connect dials the broker and blocks until the first connection succeeds
// or times out. Auto-reconnect with backoff stays enabled afterwards, and
// a retained online status is published on every (re)connect.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	c := &Client{
		cfg:  cfg,
		subs: make(map[string]subscription),
	}

	opts := newClientOptions(cfg)
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleConnectionLost(err) })

	c.paho = pahomqtt.NewClient(opts)

	token := c.paho.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect handler runs on paho's goroutine and may not have
	// fired yet. Mark connected here so IsConnected is already true when
	// Connect returns.
	c.connected.Store(true)

	return c, nil
}

// handleConnect runs on initial connect and every reconnect: restore
// subscriptions, announce we are online, then notify the callback.
func (c *Client) handleConnect() {
	c.connected.Store(true)

	c.mu.Lock()
	subs := make(map[string]subscription, len(c.subs))
	for topic, sub := range c.subs {
		subs[topic] = sub
	}
	notify := c.onConnect
	c.mu.Unlock()

	for topic, sub := range subs {
		c.paho.Subscribe(topic, sub.qos, c.wrapHandler(sub.handler))
	}

	c.paho.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
		statusJSON(statusOnline, c.cfg.Broker.ClientID, ""))

	if notify != nil {
		notify()
	}
}

func (c *Client) handleConnectionLost(err error) {
	c.connected.Store(false)

	c.mu.Lock()
	notify := c.onDisconnect
	c.mu.Unlock()

	if notify != nil {
		notify(err)
	}
}

// Close publishes a graceful offline status, distinguishable from the LWT
// crash payload, then disconnects. Closing a never-connected client is not
// an error.
func (c *Client) Close() error {
	if c.paho == nil {
		return nil
	}

	if c.IsConnected() {
		token := c.paho.Publish(Topics{}.SystemStatus(), byte(c.cfg.QoS), true,
			statusJSON(statusOffline, c.cfg.Broker.ClientID, reasonShutdown))
		token.WaitTimeout(publishTimeout)
	}

	c.paho.Disconnect(disconnectQuiesceMs)
	c.connected.Store(false)
	return nil
}

// HealthCheck reports the last known connection state.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected reports whether the client currently holds a broker
// connection.
func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.paho.IsConnected()
}

// SetOnConnect registers a callback invoked on initial connect and every
// reconnect, after subscriptions have been restored.
func (c *Client) SetOnConnect(fn func()) {
	c.mu.Lock()
	c.onConnect = fn
	c.mu.Unlock()
}

// SetOnDisconnect registers a callback invoked when the connection drops.
func (c *Client) SetOnDisconnect(fn func(err error)) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}

// SetLogger gives the client somewhere to report handler errors and
// recovered panics. Without it they are dropped.
func (c *Client) SetLogger(log Logger) {
	c.mu.Lock()
	c.log = log
	c.mu.Unlock()
}

func (c *Client) logger() Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log
}

// wrapHandler adapts a MessageHandler for paho, adding panic recovery so
// a bad command payload cannot take down the message loop.
func (c *Client) wrapHandler(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				if log := c.logger(); log != nil {
					log.Error("mqtt handler panic", "topic", msg.Topic(), "panic", r)
				}
			}
		}()

		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			if log := c.logger(); log != nil {
				log.Warn("mqtt handler error", "topic", msg.Topic(), "error", err)
			}
		}
	}
}
