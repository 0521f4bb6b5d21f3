// Package config loads and validates Strand Core configuration.
//
// Configuration is read from a YAML file with hardcoded defaults
// underneath and STRAND_* environment variable overrides on top:
//
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Secrets (MQTT credentials, InfluxDB token) should come from the
// environment rather than the config file on shared machines.
package config
