package library

import (
	"fmt"
	"os"
	"time"

	"github.com/atticlabs/attic/internal/remote"
	"github.com/atticlabs/attic/internal/userdata"
	"go.yaml.in/yaml/v3"
)

// DefaultMaxAge is the staleness threshold for the on-disk catalog cache.
const DefaultMaxAge = 7 * 24 * time.Hour

// cacheFile is the YAML document written after each successful refresh.
type cacheFile struct {
	RefreshedAt time.Time             `yaml:"refreshed_at"`
	Entries     []remote.CatalogEntry `yaml:"entries"`
}

// WriteCache persists the mirrored catalog to path. Cache write failures
// are non-fatal to callers: the in-memory mirror stays authoritative.
func WriteCache(path string, entries []remote.CatalogEntry) error {
	data, err := yaml.Marshal(cacheFile{
		RefreshedAt: time.Now().UTC(),
		Entries:     entries,
	})
	if err != nil {
		return fmt.Errorf("encoding catalog cache: %w", err)
	}
	if err := os.WriteFile(path, data, userdata.FilePermSecure); err != nil {
		return fmt.Errorf("writing catalog cache: %w", err)
	}
	return nil
}

// ReadCache loads a previously written catalog cache.
func ReadCache(path string) ([]remote.CatalogEntry, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading catalog cache: %w", err)
	}
	var cf cacheFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing catalog cache: %w", err)
	}
	return cf.Entries, cf.RefreshedAt, nil
}

// IsStale returns true if the cache at path is older than maxAge, missing,
// or unreadable.
func IsStale(path string, maxAge time.Duration) bool {
	_, refreshedAt, err := ReadCache(path)
	if err != nil || refreshedAt.IsZero() {
		return true
	}
	return time.Since(refreshedAt) > maxAge
}
