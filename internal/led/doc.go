// Package led defines the LED strip abstraction the animation engine
// renders through, plus the drivers that implement it.
//
// The engine only ever sees the Strip interface: an addressable line of
// LEDs with per-index writes, a whole-strip fill, and an explicit flush
// for writes that were deferred with show=false. Colours are immutable
// RGB triples with float64 channels in [0, 1]; Black is the canonical
// off state.
//
// Two drivers are provided:
//
//   - Memory: an in-memory frame buffer. Used for tests, the simulator
//     driver, and the WebSocket frame preview.
//   - GPIO: discrete on/off LEDs on GPIO lines via the Linux character
//     device (go-gpiocdev). Suitable for status bars built from plain
//     LEDs rather than addressable pixels.
//
// Drivers must tolerate concurrent reads (Snapshot) while a single
// animation goroutine writes. Two animations must never drive the same
// strip concurrently; the player enforces that.
package led
