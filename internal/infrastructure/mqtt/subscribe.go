package mqtt

import "fmt"

// Subscribe registers handler for topic, which may use MQTT wildcards
// ("strand/player/event/+", "strand/#"). The subscription is remembered
// and replayed after a reconnect.
//
// Handlers run on paho's goroutines; a slow handler stalls delivery of
// later messages.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if handler == nil {
		return fmt.Errorf("%w: nil handler", ErrSubscribeFailed)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	// Track first so a reconnect racing this call still restores the
	// subscription.
	c.mu.Lock()
	c.subs[topic] = subscription{qos: qos, handler: handler}
	c.mu.Unlock()

	token := c.paho.Subscribe(topic, qos, c.wrapHandler(handler))
	if !token.WaitTimeout(publishTimeout) {
		c.forget(topic)
		return fmt.Errorf("%w: timeout after %v", ErrSubscribeFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		c.forget(topic)
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	return nil
}

func (c *Client) forget(topic string) {
	c.mu.Lock()
	delete(c.subs, topic)
	c.mu.Unlock()
}
