package led

import (
	"fmt"
	"strconv"
	"strings"
)

// channelMax is the integer ceiling used when converting to 8-bit channels.
const channelMax = 255

// Color is an immutable RGB colour with channels in [0, 1].
//
// The zero value is Black, the canonical "off" state used whenever an
// animation ends non-persistently.
// Colors marshal to and from text (JSON strings, YAML scalars) in hex
// form, and additionally parse from well-known names ("red", "off").
type Color struct {
	R float64
	G float64
	B float64
}

// Predefined colours. Black doubles as the off sentinel.
var (
	Black   = Color{}
	White   = Color{R: 1, G: 1, B: 1}
	Red     = Color{R: 1}
	Green   = Color{G: 1}
	Blue    = Color{B: 1}
	Yellow  = Color{R: 1, G: 1}
	Magenta = Color{R: 1, B: 1}
	Cyan    = Color{G: 1, B: 1}
	Orange  = Color{R: 1, G: 0.5}
)

// namedColors maps lower-case colour names to their values for parsing.
var namedColors = map[string]Color{
	"black":   Black,
	"off":     Black,
	"white":   White,
	"red":     Red,
	"green":   Green,
	"blue":    Blue,
	"yellow":  Yellow,
	"magenta": Magenta,
	"cyan":    Cyan,
	"orange":  Orange,
}

// Scaled returns the colour with every channel multiplied by brightness.
// Brightness is clamped to [0, 1], so breathe sweeps cannot overshoot.
func (c Color) Scaled(brightness float64) Color {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	return Color{
		R: c.R * brightness,
		G: c.G * brightness,
		B: c.B * brightness,
	}
}

// IsOff reports whether every channel is zero.
func (c Color) IsOff() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Hex returns the colour as a #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		toByte(c.R), toByte(c.G), toByte(c.B))
}

// String returns the colour's hex representation.
func (c Color) String() string {
	return c.Hex()
}

// toByte converts a [0, 1] channel to an 8-bit value.
func toByte(ch float64) uint8 {
	if ch <= 0 {
		return 0
	}
	if ch >= 1 {
		return channelMax
	}
	return uint8(ch*channelMax + 0.5)
}

// ParseColor converts a colour name ("red", "off") or a hex string
// ("#ff8800", "ff8800") to a Color.
//
// Returns:
//   - Color: The parsed colour
//   - error: If the string is neither a known name nor valid hex
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(name, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Color{
		R: float64(v>>16&0xff) / channelMax,
		G: float64(v>>8&0xff) / channelMax,
		B: float64(v&0xff) / channelMax,
	}, nil
}

// MarshalText implements encoding.TextMarshaler, emitting the hex form.
// This covers both JSON string fields and YAML scalars.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting names or hex.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
