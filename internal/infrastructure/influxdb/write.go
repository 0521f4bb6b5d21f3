package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// runMeasurement holds one row per run lifecycle event. Animation name,
// event and outcome are tags so dashboards can group on them; the run id
// stays a field to keep series cardinality down.
const runMeasurement = "animation_runs"

// WriteRunStarted records that the player started a run. Non-blocking.
func (c *Client) WriteRunStarted(runID, animation string) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(runMeasurement,
		map[string]string{
			"animation": animation,
			"event":     "started",
		},
		map[string]interface{}{
			"run_id": runID,
		},
		time.Now()))
}

// WriteRunFinished records how a run ended. outcome is one of the
// player's outcome strings: completed, stopped, timeout or error.
func (c *Client) WriteRunFinished(runID, animation, outcome string, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(runMeasurement,
		map[string]string{
			"animation": animation,
			"event":     "finished",
			"outcome":   outcome,
		},
		map[string]interface{}{
			"run_id":           runID,
			"duration_seconds": duration.Seconds(),
		},
		time.Now()))
}
