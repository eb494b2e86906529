package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atticlabs/attic/internal/branding"
)

// File and directory names under the attic home directory.
const (
	RecordsFile      = "records.db"
	CatalogCacheFile = "catalog.yaml"
	DownloadsDir     = "downloads"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// HomeRoot returns the path to the attic home directory.
// It checks the ATTIC_HOME environment variable first,
// then falls back to ~/.attic.
func HomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// RecordsPath returns the path to the install record database.
// Checks ATTIC_RECORDS first, then falls back to ~/.attic/records.db.
func RecordsPath() (string, error) {
	if v := os.Getenv(branding.EnvVar("RECORDS")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, RecordsFile), nil
}

// CatalogCachePath returns the path to the catalog cache written after each
// successful refresh.
func CatalogCachePath() (string, error) {
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, CatalogCacheFile), nil
}

// DownloadsRoot returns the default directory for downloaded installers.
// Checks ATTIC_DOWNLOADS first, then falls back to ~/.attic/downloads.
func DownloadsRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("DOWNLOADS")); v != "" {
		return v, nil
	}
	root, err := HomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, DownloadsDir), nil
}
