package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

const (
	// connectTimeout bounds the initial connection attempt.
	connectTimeout = 10 * time.Second

	// publishTimeout bounds waiting for a publish acknowledgement.
	publishTimeout = 5 * time.Second

	// disconnectQuiesceMs is how long Disconnect waits for in-flight
	// messages, in milliseconds as paho expects.
	disconnectQuiesceMs = 1000

	// keepAlive is the PING interval that detects dead connections.
	keepAlive = 60 * time.Second

	// maxQoS is the highest QoS level MQTT defines.
	maxQoS = 2
)

// Status payload values published to strand/system/status.
const (
	statusOnline     = "online"
	statusOffline    = "offline"
	reasonShutdown   = "graceful_shutdown"
	reasonUnexpected = "unexpected_disconnect"
)

// statusPayload is the retained system status document. Controllers watch
// this topic to show whether the strip is reachable.
type statusPayload struct {
	Status    string `json:"status"`
	ClientID  string `json:"client_id"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}

// statusJSON renders a status document. reason is empty for online.
func statusJSON(status, clientID, reason string) string {
	b, err := json.Marshal(statusPayload{
		Status:    status,
		ClientID:  clientID,
		Reason:    reason,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		// Marshalling a flat struct of strings cannot fail.
		return `{"status":"` + status + `"}`
	}
	return string(b)
}

// newClientOptions translates the mqtt section of config.yaml into paho
// options: broker URL, credentials, auto-reconnect with backoff, and the
// LWT that flags an unexpected disconnect.
func newClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))

	opts.SetClientID(cfg.Broker.ClientID)
	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// Fresh session each connect; handleConnect replays our subscriptions.
	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)

	// The broker publishes this for us if we disappear without Close.
	opts.SetWill(Topics{}.SystemStatus(),
		statusJSON(statusOffline, cfg.Broker.ClientID, reasonUnexpected), 1, true)

	return opts
}
