package library

import (
	"errors"
	"fmt"

	"github.com/atticlabs/attic/internal/remote"
)

var (
	// ErrNotInitialized indicates a lookup before any successful refresh.
	ErrNotInitialized = errors.New("catalog not refreshed yet")

	// ErrNotFound indicates no catalog entry matches.
	ErrNotFound = errors.New("title not in catalog")

	// ErrAmbiguous indicates a name matched more than one catalog entry.
	// Catalog name collisions are never auto-resolved: picking the wrong
	// title here selects what gets downloaded.
	ErrAmbiguous = errors.New("title name is ambiguous")
)

// Lister fetches the catalog for an authenticated session.
type Lister interface {
	ListCatalog(session *remote.Session) ([]remote.CatalogEntry, error)
}

// Mirror caches the remote catalog for the current session and exposes
// lookups over the last successful refresh.
type Mirror struct {
	entries   []remote.CatalogEntry
	byID      map[string]remote.CatalogEntry
	refreshed bool
}

// NewMirror returns an empty mirror. Lookups fail with ErrNotInitialized
// until Refresh succeeds.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Refresh replaces the mirrored catalog with a fresh fetch. On failure the
// previous mirror contents (if any) are kept.
func (m *Mirror) Refresh(client Lister, session *remote.Session) ([]remote.CatalogEntry, error) {
	entries, err := client.ListCatalog(session)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]remote.CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.TitleID] = e
	}

	m.entries = entries
	m.byID = byID
	m.refreshed = true
	return entries, nil
}

// Prime populates the mirror from an already-fetched catalog, such as the
// on-disk cache of a previous session's refresh.
func (m *Mirror) Prime(entries []remote.CatalogEntry) {
	byID := make(map[string]remote.CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.TitleID] = e
	}
	m.entries = entries
	m.byID = byID
	m.refreshed = true
}

// Refreshed reports whether at least one refresh has succeeded.
func (m *Mirror) Refreshed() bool {
	return m.refreshed
}

// Entries returns the mirrored catalog in service order.
func (m *Mirror) Entries() ([]remote.CatalogEntry, error) {
	if !m.refreshed {
		return nil, ErrNotInitialized
	}
	return m.entries, nil
}

// FindByTitleID looks up a catalog entry by its stable identifier.
func (m *Mirror) FindByTitleID(id string) (remote.CatalogEntry, error) {
	if !m.refreshed {
		return remote.CatalogEntry{}, ErrNotInitialized
	}
	entry, ok := m.byID[id]
	if !ok {
		return remote.CatalogEntry{}, fmt.Errorf("title id %q: %w", id, ErrNotFound)
	}
	return entry, nil
}

// FindByName looks up a catalog entry by exact, case-sensitive name.
// Zero matches return ErrNotFound; multiple matches return ErrAmbiguous so
// the caller is forced to disambiguate by id or interactively.
func (m *Mirror) FindByName(name string) (remote.CatalogEntry, error) {
	if !m.refreshed {
		return remote.CatalogEntry{}, ErrNotInitialized
	}

	var found []remote.CatalogEntry
	for _, e := range m.entries {
		if e.Name == name {
			found = append(found, e)
		}
	}

	switch len(found) {
	case 0:
		return remote.CatalogEntry{}, fmt.Errorf("title %q: %w", name, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return remote.CatalogEntry{}, fmt.Errorf("title %q matches %d catalog entries: %w", name, len(found), ErrAmbiguous)
	}
}
