package preset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for preset persistence operations.
// This abstraction allows for different implementations (SQLite, mock)
// and enables unit testing without database dependencies.
type Repository interface {
	// GetByID retrieves a preset by its unique identifier.
	// Returns ErrPresetNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*Preset, error)

	// GetByName retrieves a preset by its unique name.
	// Returns ErrPresetNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*Preset, error)

	// List retrieves all presets ordered by name.
	List(ctx context.Context) ([]Preset, error)

	// ListByAnimation retrieves all presets for a given animation.
	ListByAnimation(ctx context.Context, animation string) ([]Preset, error)

	// Create inserts a new preset.
	// Returns ErrPresetExists if the ID or name is already taken.
	Create(ctx context.Context, p *Preset) error

	// Update modifies an existing preset.
	// Returns ErrPresetNotFound if it does not exist.
	Update(ctx context.Context, p *Preset) error

	// Delete removes a preset by ID.
	// Returns ErrPresetNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const presetColumns = `id, name, animation, params, timeout_ms, one_shot, description, created_at, updated_at`

// GetByID retrieves a preset by its unique identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets WHERE id = ?`

	p, err := scanPreset(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, fmt.Errorf("querying preset by id: %w", err)
	}
	return p, nil
}

// GetByName retrieves a preset by its unique name.
func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets WHERE name = ?`

	p, err := scanPreset(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPresetNotFound
		}
		return nil, fmt.Errorf("querying preset by name: %w", err)
	}
	return p, nil
}

// List retrieves all presets ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets ORDER BY name`
	return r.queryPresets(ctx, query)
}

// ListByAnimation retrieves all presets for a given animation.
func (r *SQLiteRepository) ListByAnimation(ctx context.Context, animation string) ([]Preset, error) {
	query := `SELECT ` + presetColumns + ` FROM presets WHERE animation = ? ORDER BY name`
	return r.queryPresets(ctx, query, animation)
}

// Create inserts a new preset.
func (r *SQLiteRepository) Create(ctx context.Context, p *Preset) error {
	if p.ID == "" {
		p.ID = "pre-" + uuid.NewString()
	}

	paramsJSON, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("marshalling params: %w", err)
	}

	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	query := `
		INSERT INTO presets (` + presetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Animation,
		string(paramsJSON),
		p.Timeout.Milliseconds(),
		boolToInt(p.OneShot),
		p.Description,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrPresetExists
		}
		return fmt.Errorf("inserting preset: %w", err)
	}

	return nil
}

// Update modifies an existing preset.
func (r *SQLiteRepository) Update(ctx context.Context, p *Preset) error {
	paramsJSON, err := json.Marshal(p.Params)
	if err != nil {
		return fmt.Errorf("marshalling params: %w", err)
	}

	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE presets
		SET name = ?, animation = ?, params = ?, timeout_ms = ?,
			one_shot = ?, description = ?, updated_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Animation,
		string(paramsJSON),
		p.Timeout.Milliseconds(),
		boolToInt(p.OneShot),
		p.Description,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrPresetExists
		}
		return fmt.Errorf("updating preset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrPresetNotFound
	}

	return nil
}

// Delete removes a preset by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting preset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrPresetNotFound
	}

	return nil
}

// queryPresets executes a query and scans all resulting presets.
func (r *SQLiteRepository) queryPresets(ctx context.Context, query string, args ...any) ([]Preset, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning preset: %w", err)
		}
		presets = append(presets, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presets: %w", err)
	}
	return presets, nil
}

// rowScanner is an interface that sql.Row and sql.Rows both implement.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPreset scans a single row into a Preset.
func scanPreset(row rowScanner) (*Preset, error) {
	var p Preset
	var paramsJSON string
	var timeoutMs int64
	var oneShot int
	var createdAt, updatedAt string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Animation,
		&paramsJSON,
		&timeoutMs,
		&oneShot,
		&p.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(paramsJSON), &p.Params); err != nil {
		return nil, fmt.Errorf("unmarshalling params: %w", err)
	}

	p.Timeout = time.Duration(timeoutMs) * time.Millisecond
	p.OneShot = oneShot != 0

	// Timestamps are written by this package in RFC3339.
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // Format is controlled
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // Format is controlled

	return &p, nil
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueConstraintError checks whether err is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
