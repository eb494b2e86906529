package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no record matches the query.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidQuery indicates a query supplied neither or both of
	// title id and name.
	ErrInvalidQuery = errors.New("query must supply exactly one of title id or name")
)

// Record is the locally persisted install status for one title.
// InstallDir and ExecutablePath are empty until the title is installed;
// ExecutablePath is set only together with InstallDir.
type Record struct {
	TitleID        string
	Name           string
	InstallDir     string
	ExecutablePath string
}

// Installed reports whether the record has a committed install location.
func (r Record) Installed() bool {
	return r.InstallDir != ""
}

// Query selects a record by exactly one of TitleID or Name.
type Query struct {
	TitleID string
	Name    string
}

// GetResult is the outcome of a successful Get. Duplicate is set when a
// name query matched more than one record; the first by insertion order is
// returned and the caller decides whether to surface the ambiguity.
type GetResult struct {
	Record    Record
	Duplicate bool
}

// Seed identifies a catalog title that should have at least a placeholder
// record.
type Seed struct {
	TitleID string
	Name    string
}

// Store manages the install_records table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the record database at path and ensures the
// schema is applied.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get looks up a record by title id or by name. Name lookups tolerate
// duplicates: the first record by insertion order is returned and
// GetResult.Duplicate is set. Returns ErrInvalidQuery unless exactly one
// selector is supplied, ErrNotFound when nothing matches.
func (s *Store) Get(ctx context.Context, q Query) (GetResult, error) {
	if (q.TitleID == "") == (q.Name == "") {
		return GetResult{}, ErrInvalidQuery
	}

	if q.TitleID != "" {
		rec, err := s.scanOne(ctx,
			`SELECT title_id, name, install_dir, executable
			 FROM install_records WHERE title_id = ?`, q.TitleID)
		if err != nil {
			return GetResult{}, err
		}
		return GetResult{Record: rec}, nil
	}

	// One statement, so the returned row and the duplicate count cannot
	// disagree under a concurrent writer.
	var rec Record
	var matches int
	err := s.db.QueryRowContext(ctx,
		`SELECT title_id, name, install_dir, executable, COUNT(*) OVER ()
		 FROM install_records WHERE name = ? ORDER BY rowid LIMIT 1`, q.Name,
	).Scan(&rec.TitleID, &rec.Name, &rec.InstallDir, &rec.ExecutablePath, &matches)
	if errors.Is(err, sql.ErrNoRows) {
		return GetResult{}, ErrNotFound
	}
	if err != nil {
		return GetResult{}, fmt.Errorf("querying record by name: %w", err)
	}

	return GetResult{Record: rec, Duplicate: matches > 1}, nil
}

// Upsert inserts the record, or overwrites all fields except the title id
// if it already exists. The write is committed before Upsert returns.
func (s *Store) Upsert(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO install_records (title_id, name, install_dir, executable)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(title_id) DO UPDATE SET
		   name = excluded.name,
		   install_dir = excluded.install_dir,
		   executable = excluded.executable`,
		rec.TitleID, rec.Name, rec.InstallDir, rec.ExecutablePath,
	)
	if err != nil {
		return fmt.Errorf("upsert record %s: %w", rec.TitleID, err)
	}
	return nil
}

// Delete removes the record for titleID. Deleting an absent record is a
// no-op, not an error.
func (s *Store) Delete(ctx context.Context, titleID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM install_records WHERE title_id = ?`, titleID,
	); err != nil {
		return fmt.Errorf("delete record %s: %w", titleID, err)
	}
	return nil
}

// InitializeFrom creates a placeholder record for every seed that has no
// record yet. Existing records are left untouched, so it is safe to call
// on every session. The whole pass runs in one immediate transaction so a
// concurrent invocation cannot interleave its own writes.
func (s *Store) InitializeFrom(ctx context.Context, seeds []Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin init transaction: %w", err)
	}
	defer tx.Rollback()

	for _, seed := range seeds {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO install_records (title_id, name)
			 VALUES (?, ?)
			 ON CONFLICT(title_id) DO NOTHING`,
			seed.TitleID, seed.Name,
		); err != nil {
			return fmt.Errorf("seed record %s: %w", seed.TitleID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit init transaction: %w", err)
	}
	return nil
}

// All returns every record, ordered by insertion.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title_id, name, install_dir, executable
		 FROM install_records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.TitleID, &rec.Name, &rec.InstallDir, &rec.ExecutablePath); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) scanOne(ctx context.Context, query string, arg string) (Record, error) {
	var rec Record
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&rec.TitleID, &rec.Name, &rec.InstallDir, &rec.ExecutablePath)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("querying record: %w", err)
	}
	return rec, nil
}
