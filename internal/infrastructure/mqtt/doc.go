// Package mqtt is Strand Core's remote control surface.
//
// Controllers publish play/stop commands to strand/player/command. Core
// publishes the running animation (retained) to strand/player/state, run
// lifecycle events under strand/player/event/+, frame previews to
// strand/strip/frame, and its own liveness (retained, with an LWT for
// crashes) to strand/system/status.
//
// The client auto-reconnects with backoff and replays its subscriptions
// after each reconnect. TLS and broker credentials come from the mqtt
// section of config.yaml; anonymous plaintext is for local development
// only.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.PlayerCommand(), 1,
//	    func(topic string, payload []byte) error {
//	        return handleCommand(payload)
//	    })
//
//	client.PublishRetained(mqtt.Topics{}.PlayerState(), stateJSON)
package mqtt
