package player

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRecord is a single row in the run_history table.
type RunRecord struct {
	ID         string     `json:"id"`
	Animation  string     `json:"animation"`
	PresetID   string     `json:"preset_id,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Outcome    string     `json:"outcome,omitempty"`
}

// HistoryFilter controls which run records to return.
type HistoryFilter struct {
	Animation string // optional: filter by animation name
	Outcome   string // optional: filter by outcome
	Limit     int    // default 50, max 200
	Offset    int    // pagination offset
}

// Default and maximum page sizes for history queries.
const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// SQLiteRecorder persists run history to SQLite. It implements Recorder.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder creates a new run history recorder.
func NewSQLiteRecorder(db *sql.DB) *SQLiteRecorder {
	return &SQLiteRecorder{db: db}
}

// RecordStart inserts a new run history row at run start.
func (r *SQLiteRecorder) RecordStart(ctx context.Context, rec *RunRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO run_history (id, animation, preset_id, started_at)
		 VALUES (?, ?, ?, ?)`,
		rec.ID,
		rec.Animation,
		nullableString(rec.PresetID),
		rec.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

// RecordFinish stamps a run's completion time and outcome.
func (r *SQLiteRecorder) RecordFinish(ctx context.Context, id string, finishedAt time.Time, outcome string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE run_history SET finished_at = ?, outcome = ? WHERE id = ?`,
		finishedAt.Format(time.RFC3339),
		outcome,
		id,
	)
	if err != nil {
		return fmt.Errorf("updating run record: %w", err)
	}
	return nil
}

// List returns run records matching the filter, most recent first.
func (r *SQLiteRecorder) List(ctx context.Context, filter HistoryFilter) ([]RunRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	query := `SELECT id, animation, preset_id, started_at, finished_at, outcome FROM run_history`
	var conditions []string
	var args []any

	if filter.Animation != "" {
		conditions = append(conditions, "animation = ?")
		args = append(args, filter.Animation)
	}
	if filter.Outcome != "" {
		conditions = append(conditions, "outcome = ?")
		args = append(args, filter.Outcome)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY started_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var presetID, finishedAt, outcome sql.NullString
		var startedAt string

		if err := rows.Scan(&rec.ID, &rec.Animation, &presetID, &startedAt, &finishedAt, &outcome); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}

		rec.PresetID = presetID.String
		rec.Outcome = outcome.String
		// Timestamps are written by this package in RFC3339.
		rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt) //nolint:errcheck // Format is controlled
		if finishedAt.Valid {
			t, _ := time.Parse(time.RFC3339, finishedAt.String) //nolint:errcheck // Format is controlled
			rec.FinishedAt = &t
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run history: %w", err)
	}
	return records, nil
}

// nullableString returns nil for empty strings, or the string otherwise.
// Used for nullable TEXT columns in SQLite.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
