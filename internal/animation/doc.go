// Package animation implements the time-based visual patterns Strand
// Core renders onto an LED strip.
//
// Every pattern obeys the same lifecycle contract: construct it with a
// strip handle and its parameters, call Start to run it synchronously
// until a stop condition, and call Stop from any other goroutine to
// interrupt it promptly. Patterns own all timing and sequencing logic
// themselves; the strip is a dumb frame sink.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────┐
//	│                Animation (animation.go)              │
//	│   Start(timeout, oneShot) / Stop lifecycle contract  │
//	│        │                                             │
//	│        ▼                                             │
//	│  ┌───────────┐   interruptible waits   ┌──────────┐ │
//	│  │ stopSignal│◀────────────────────────│ patterns │ │
//	│  │(signal.go)│                         │ (7 files)│ │
//	│  └───────────┘                         └──────────┘ │
//	│        │                                             │
//	│        ▼                                             │
//	│  Registry (registry.go): name → constructor          │
//	└─────────────────────────────────────────────────────┘
//
// Stop conditions are: Stop() called, the optional timeout elapsing
// (checked once per loop pass, so a run may overshoot by one iteration
// period), or — in one-shot mode — one full cycle of the pattern
// completing. All three converge on the same clean exit: every pattern
// except Fill restores the strip to black before Start returns. Fill is
// the one persistent pattern; its result is meant to stay lit.
//
// Refill and Bounce are composites built on an embedded Fill instance
// whose colour (and, for Bounce, direction) they retune between
// sub-runs. Stopping a composite forwards to the in-flight Fill so
// cancellation is observed within one wait step.
//
// Device errors are returned from Start unchanged; the engine does not
// retry, and it does not attempt the final blank once the strip itself
// is failing.
package animation
