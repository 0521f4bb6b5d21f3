package mqtt

import "fmt"

// maxPayloadSize caps outbound messages at 1MB, in line with common
// broker limits. Frame previews for even very long strips sit well under
// this.
const maxPayloadSize = 1 << 20

// Publish sends payload to topic at the given QoS. Retained messages are
// stored by the broker and handed to new subscribers immediately; use
// them for state topics (player state, system status), never for commands
// or events.
//
//	err := client.Publish(mqtt.Topics{}.PlayerCommand(), []byte(`{"action":"stop"}`), 1, false)
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload %d bytes exceeds %d", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.paho.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// PublishRetained publishes a retained message at the configured default
// QoS. The player uses this for strand/player/state so controllers see
// the current animation as soon as they subscribe.
func (c *Client) PublishRetained(topic string, payload []byte) error {
	return c.Publish(topic, payload, byte(c.cfg.QoS), true)
}
