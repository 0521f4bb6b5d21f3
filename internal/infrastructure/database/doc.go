// Package database owns the SQLite storage for Strand Core.
//
// Two tables make up the schema: presets (saved animation configurations)
// and run_history (one row per animation run the player starts). Both live
// in a single database file opened in WAL mode so API reads do not block
// the player's history writes.
//
// The migration SQL is embedded in this package under schema/ and applied
// by Migrate at startup. Migrations are additive-only: new columns must be
// nullable or carry a default, and columns are never dropped or renamed.
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
package database
