package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGet_InvalidQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, Query{}); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("empty query: expected ErrInvalidQuery, got %v", err)
	}
	if _, err := s.Get(ctx, Query{TitleID: "a", Name: "b"}); !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("both selectors: expected ErrInvalidQuery, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get(context.Background(), Query{TitleID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsert_InsertThenOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := Record{TitleID: "t1", Name: "Mystery Case Files"}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	rec.InstallDir = "/opt/titles/mcf"
	rec.ExecutablePath = "/opt/titles/mcf/Game.exe"
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.Get(ctx, Query{TitleID: "t1"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Record.ExecutablePath != "/opt/titles/mcf/Game.exe" {
		t.Errorf("expected overwritten executable, got %q", got.Record.ExecutablePath)
	}
	if !got.Record.Installed() {
		t.Error("expected record to report installed")
	}
}

func TestGetByName_FirstMatchFlagsDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := Record{TitleID: "t1", Name: "Mystery Case Files"}
	second := Record{TitleID: "t2", Name: "Mystery Case Files"}
	if err := s.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, Query{Name: "Mystery Case Files"})
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.Record.TitleID != "t1" {
		t.Errorf("expected first record by insertion order, got %s", got.Record.TitleID)
	}
	if !got.Duplicate {
		t.Error("expected duplicate flag to be set")
	}

	if err := s.Upsert(ctx, Record{TitleID: "t3", Name: "Alpha Station"}); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, Query{Name: "Alpha Station"})
	if err != nil {
		t.Fatalf("get by unique name: %v", err)
	}
	if got.Duplicate {
		t.Error("unique name must not be flagged as duplicate")
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, Record{TitleID: "t1", Name: "A"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "t1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.Delete(ctx, "t1"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if _, err := s.Get(ctx, Query{TitleID: "t1"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestInitializeFrom_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seeds := []Seed{
		{TitleID: "t1", Name: "Alpha"},
		{TitleID: "t2", Name: "Beta"},
	}
	if err := s.InitializeFrom(ctx, seeds); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := s.InitializeFrom(ctx, seeds); err != nil {
		t.Fatalf("second init: %v", err)
	}

	records, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after double init, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Installed() {
			t.Errorf("placeholder %s should not report installed", rec.TitleID)
		}
	}
}

func TestInitializeFrom_LeavesExistingUntouched(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	installed := Record{
		TitleID:        "t1",
		Name:           "Alpha",
		InstallDir:     "/opt/titles/alpha",
		ExecutablePath: "/opt/titles/alpha/Alpha.exe",
	}
	if err := s.Upsert(ctx, installed); err != nil {
		t.Fatal(err)
	}

	if err := s.InitializeFrom(ctx, []Seed{{TitleID: "t1", Name: "Alpha"}}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, Query{TitleID: "t1"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Record.InstallDir != installed.InstallDir {
		t.Errorf("init overwrote existing record: %+v", got.Record)
	}
}

func TestConcurrentUpserts_NoLostUpdate(t *testing.T) {
	// Two handles on the same database file, mutating different titles at
	// once. The busy timeout serializes the writes; both must land.
	path := filepath.Join(t.TempDir(), "records.db")

	a, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	b, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	errs := make(chan error, 2*n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			errs <- a.Upsert(ctx, Record{TitleID: fmt.Sprintf("a%d", i), Name: "A"})
		}(i)
		go func(i int) {
			defer wg.Done()
			errs <- b.Upsert(ctx, Record{TitleID: fmt.Sprintf("b%d", i), Name: "B"})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent upsert failed: %v", err)
		}
	}

	records, err := a.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2*n {
		t.Errorf("expected %d records, got %d (lost update)", 2*n, len(records))
	}
}
