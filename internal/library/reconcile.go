package library

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atticlabs/attic/internal/remote"
	"github.com/atticlabs/attic/internal/store"
)

// Status is the authoritative view of one title after reconciliation:
// catalog presence, stored record, and disk reality combined.
type Status struct {
	TitleID     string `json:"title_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	InCatalog   bool   `json:"in_catalog"`
	Installed   bool   `json:"installed"`
	InstallDir  string `json:"install_dir,omitempty"`
	Executable  string `json:"executable,omitempty"`
}

// ReconcileRecord probes the disk state behind rec and self-heals drift:
// if the recorded executable no longer exists (the install directory was
// removed outside this tool), the record is downgraded to not-installed
// and the downgrade is persisted before returning. This is the only place
// a detected inconsistency is corrected rather than reported.
func ReconcileRecord(ctx context.Context, st *store.Store, rec store.Record) (store.Record, error) {
	if !rec.Installed() {
		return rec, nil
	}

	if rec.ExecutablePath != "" {
		if _, err := os.Stat(rec.ExecutablePath); err == nil {
			return rec, nil
		}
	}

	rec.InstallDir = ""
	rec.ExecutablePath = ""
	if err := st.Upsert(ctx, rec); err != nil {
		return store.Record{}, fmt.Errorf("persisting downgrade for %s: %w", rec.TitleID, err)
	}
	return rec, nil
}

// ReconcileAll runs ReconcileRecord over every stored record.
func ReconcileAll(ctx context.Context, st *store.Store) error {
	records, err := st.All(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if _, err := ReconcileRecord(ctx, st, rec); err != nil {
			return err
		}
	}
	return nil
}

// StatusFor produces the reconciled status of a single title. A title with
// no record yet is reported as a not-installed placeholder; a record whose
// title has left the catalog is reported with InCatalog false.
func StatusFor(ctx context.Context, st *store.Store, m *Mirror, titleID string) (Status, error) {
	rec := store.Record{TitleID: titleID}
	res, err := st.Get(ctx, store.Query{TitleID: titleID})
	switch {
	case err == nil:
		rec = res.Record
	case errors.Is(err, store.ErrNotFound):
		// No record yet: keep the placeholder.
	default:
		return Status{}, err
	}

	rec, err = ReconcileRecord(ctx, st, rec)
	if err != nil {
		return Status{}, err
	}

	status := Status{
		TitleID:    titleID,
		Name:       rec.Name,
		Installed:  rec.Installed(),
		InstallDir: rec.InstallDir,
		Executable: rec.ExecutablePath,
	}
	if entry, err := m.FindByTitleID(titleID); err == nil {
		status.InCatalog = true
		status.Name = entry.Name
		status.Description = entry.Description
	}
	return status, nil
}

// Statuses produces reconciled statuses for the whole library: every
// catalog entry in service order, followed by records whose titles are no
// longer in the catalog.
func Statuses(ctx context.Context, st *store.Store, m *Mirror) ([]Status, error) {
	entries, err := m.Entries()
	if err != nil {
		return nil, err
	}

	var statuses []Status
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		status, err := statusForEntry(ctx, st, entry)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
		seen[entry.TitleID] = true
	}

	// Records removed from the remote catalog still belong to the library
	// view; the system must function in either mismatch direction.
	records, err := st.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if seen[rec.TitleID] {
			continue
		}
		rec, err := ReconcileRecord(ctx, st, rec)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, Status{
			TitleID:    rec.TitleID,
			Name:       rec.Name,
			Installed:  rec.Installed(),
			InstallDir: rec.InstallDir,
			Executable: rec.ExecutablePath,
		})
	}

	return statuses, nil
}

func statusForEntry(ctx context.Context, st *store.Store, entry remote.CatalogEntry) (Status, error) {
	rec := store.Record{TitleID: entry.TitleID, Name: entry.Name}
	res, err := st.Get(ctx, store.Query{TitleID: entry.TitleID})
	switch {
	case err == nil:
		rec = res.Record
	case errors.Is(err, store.ErrNotFound):
	default:
		return Status{}, err
	}

	rec, err = ReconcileRecord(ctx, st, rec)
	if err != nil {
		return Status{}, err
	}

	return Status{
		TitleID:     entry.TitleID,
		Name:        entry.Name,
		Description: entry.Description,
		InCatalog:   true,
		Installed:   rec.Installed(),
		InstallDir:  rec.InstallDir,
		Executable:  rec.ExecutablePath,
	}, nil
}
