// Package player runs animations on the LED strip, one at a time.
//
// The player owns the strip: every run goes through Play, which stops
// whatever is currently showing before handing the strip to the new
// pattern. Each run executes on its own goroutine and is tracked with
// a unique run ID from start to finish.
//
// # Lifecycle
//
//	Play(req) ──► stop current run ──► animation.Start on new goroutine
//	                                        │
//	Stop() ────► animation.Stop ──────► Start returns
//	                                        │
//	                              outcome (completed/stopped/error)
//	                              state + event published, run recorded
//
// Observers plug in through small optional interfaces: Publisher for
// MQTT state/events, Metrics for InfluxDB telemetry, Recorder for the
// run history table, and Broadcaster for WebSocket clients. A nil
// observer is skipped.
package player
