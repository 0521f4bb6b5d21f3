package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// schemaMigrations lists every migration in apply order. Each entry pairs
// a schema/<version>_<name>.up.sql file with a matching .down.sql
// rollback. Entries are appended, never reordered or edited once shipped.
var schemaMigrations = []migration{
	{version: "20260815_100000", name: "presets"},
	{version: "20260815_100500", name: "run_history"},
}

type migration struct {
	version string
	name    string
}

// load reads the migration's SQL for the given direction ("up" or "down").
func (m migration) load(direction string) (string, error) {
	path := fmt.Sprintf("schema/%s_%s.%s.sql", m.version, m.name, direction)
	b, err := schemaFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// Migrate brings the schema up to date, applying each pending migration in
// its own transaction. On failure, earlier migrations stay committed, the
// failing one rolls back, and later ones are not attempted; re-running
// Migrate resumes from the failure.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	applied, err := db.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, m := range schemaMigrations {
		if applied[m.version] {
			continue
		}
		if err := db.apply(ctx, m); err != nil {
			return fmt.Errorf("applying migration %s_%s: %w", m.version, m.name, err)
		}
	}
	return nil
}

// MigrateDown rolls back the most recently applied migration. This exists
// for development and tests; production deployments only migrate forward.
func (db *DB) MigrateDown(ctx context.Context) error {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return err
	}

	var version string
	err := db.QueryRowContext(ctx,
		"SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1",
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding latest migration: %w", err)
	}

	var target *migration
	for i := range schemaMigrations {
		if schemaMigrations[i].version == version {
			target = &schemaMigrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("applied migration %s is not known to this binary", version)
	}

	down, err := target.load("down")
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, down); err != nil {
		return fmt.Errorf("rolling back %s_%s: %w", target.version, target.name, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM schema_migrations WHERE version = ?", version); err != nil {
		return fmt.Errorf("removing migration record: %w", err)
	}
	return tx.Commit()
}

// AppliedMigrations returns the versions recorded in schema_migrations,
// oldest first.
func (db *DB) AppliedMigrations(ctx context.Context) ([]string, error) {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("querying migrations: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (db *DB) ensureMigrationsTable(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}
	return nil
}

func (db *DB) appliedVersions(ctx context.Context) (map[string]bool, error) {
	versions, err := db.AppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(versions))
	for _, v := range versions {
		set[v] = true
	}
	return set, nil
}

// apply runs one migration and records it, all inside a transaction.
func (db *DB) apply(ctx context.Context, m migration) error {
	up, err := m.load("up")
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, up); err != nil {
		return fmt.Errorf("executing up SQL: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
		m.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return tx.Commit()
}
