//go:build integration

package mqtt

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/strandlabs/strand-core/internal/infrastructure/config"
)

// Integration tests for connection and reconnection behaviour. They need
// a broker at 127.0.0.1:1883:
//
//	go test -tags=integration -count=1 -v ./internal/infrastructure/mqtt/...

func integrationConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "strand-integration-test",
			TLS:      false,
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

func TestIntegrationConnect(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false, want true")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
}

func TestIntegrationConnectInvalidBroker(t *testing.T) {
	cfg := integrationConfig()
	cfg.Broker.Port = 19999

	_, err := Connect(cfg)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestIntegrationPublishSubscribe(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	topic := Topics{}.PlayerEvent("integration_test")
	received := make(chan []byte, 1)

	err = client.Subscribe(topic, 1, func(_ string, payload []byte) error {
		select {
		case received <- payload:
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	want := []byte(`{"event":"integration"}`)
	if err := client.Publish(topic, want, 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-received:
		if string(got) != string(want) {
			t.Errorf("received payload = %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestIntegrationSubscriptionRestoredOnReconnect(t *testing.T) {
	client, err := Connect(integrationConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	var count atomic.Int64
	topic := Topics{}.PlayerEvent("reconnect_test")

	if err := client.Subscribe(topic, 1, func(_ string, _ []byte) error {
		count.Add(1)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	var reconnected sync.WaitGroup
	reconnected.Add(1)
	var once sync.Once
	client.SetOnConnect(func() {
		once.Do(reconnected.Done)
	})

	// Force a reconnect by breaking the underlying connection.
	client.paho.Disconnect(0)
	client.handleConnectionLost(errors.New("forced"))
	token := client.paho.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		t.Fatal("reconnect timed out")
	}
	client.handleConnect()

	if err := client.Publish(topic, []byte("ping"), 1, false); err != nil {
		t.Fatalf("Publish() after reconnect error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for count.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if count.Load() == 0 {
		t.Error("handler not invoked after reconnect")
	}
}
