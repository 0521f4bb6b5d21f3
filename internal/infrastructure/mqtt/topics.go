package mqtt

import "fmt"

// Topic prefixes for the Strand Core MQTT surface.
//
// All topics use the flat scheme: strand/{area}/{subject}
const (
	// TopicPrefix is the base for all Strand Core topics.
	TopicPrefix = "strand"

	// TopicPrefixPlayer is the base for animation player topics.
	TopicPrefixPlayer = "strand/player"

	// TopicPrefixStrip is the base for LED strip topics.
	TopicPrefixStrip = "strand/strip"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "strand/system"
)

// Topics provides builders for Strand Core MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.PlayerState()
//	// Returns: "strand/player/state"
type Topics struct{}

// PlayerCommand returns the topic for animation player commands.
// Commands are JSON objects: {"action":"play","animation":"breathe",...}
//
// Example: strand/player/command
func (Topics) PlayerCommand() string {
	return fmt.Sprintf("%s/command", TopicPrefixPlayer)
}

// PlayerState returns the topic for the player's current state.
// Published retained so new subscribers see the running animation.
//
// Example: strand/player/state
func (Topics) PlayerState() string {
	return fmt.Sprintf("%s/state", TopicPrefixPlayer)
}

// PlayerEvent returns the topic for run lifecycle events.
//
// Example: strand/player/event/run_started
func (Topics) PlayerEvent(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefixPlayer, eventType)
}

// StripFrame returns the topic for strip frame snapshots.
// Only published by the memory driver when previews are enabled.
//
// Example: strand/strip/frame
func (Topics) StripFrame() string {
	return fmt.Sprintf("%s/frame", TopicPrefixStrip)
}

// SystemStatus returns the system status topic.
// Carries online/offline payloads including the LWT.
//
// Example: strand/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllPlayerEvents returns a pattern matching all run lifecycle events.
//
// Pattern: strand/player/event/+
func (Topics) AllPlayerEvents() string {
	return fmt.Sprintf("%s/event/+", TopicPrefixPlayer)
}

// AllTopics returns a pattern matching all Strand Core topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: strand/#
func (Topics) AllTopics() string {
	return "strand/#"
}
