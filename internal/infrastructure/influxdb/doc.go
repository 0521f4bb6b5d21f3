// Package influxdb records animation run telemetry.
//
// The player reports every run start and finish; points land in the
// animation_runs measurement, batched and written in the background so
// telemetry never slows a frame. When influxdb.enabled is false in
// config.yaml, Connect returns ErrDisabled and the player simply runs
// without metrics.
//
// Usage:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    // ErrDisabled when influxdb.enabled=false
//	}
//	defer client.Close()
//
//	client.WriteRunStarted("run-abc123", "breathe")
//	client.WriteRunFinished("run-abc123", "breathe", "completed", 4*time.Second)
package influxdb
