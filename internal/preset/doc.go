// Package preset manages named, persisted animation configurations.
//
// A preset binds an animation name to a set of parameters, an optional
// timeout, and the one-shot flag, so a favourite effect can be recalled
// by name from the API or MQTT without re-specifying every knob.
//
// Presets are stored in SQLite via Repository. Validation ensures a
// preset always references a registered animation and carries sane
// parameter values before it reaches the database.
package preset
