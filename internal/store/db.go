package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS install_records (
	title_id    TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	install_dir TEXT NOT NULL DEFAULT '',
	executable  TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_install_records_name ON install_records(name);
`

// openDB opens the SQLite database at path with production-safe defaults:
// WAL journal mode, full synchronous commits, and a 5-second busy timeout
// so a concurrent invocation waits for the lock instead of failing. It
// pings the connection to verify it is usable before returning.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s on %s: %w", pragma, path, err)
		}
	}

	return db, nil
}
