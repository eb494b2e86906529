package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atticlabs/attic/internal/installer"
	"github.com/atticlabs/attic/internal/library"
	"github.com/atticlabs/attic/internal/remote"
	"github.com/atticlabs/attic/internal/resolve"
	"github.com/atticlabs/attic/internal/store"
)

// ErrNotInstalled indicates an uninstall was requested for a title with no
// committed installation.
var ErrNotInstalled = errors.New("title is not installed")

// Fetcher downloads an installer payload. Satisfied by *remote.Client.
type Fetcher interface {
	FetchInstaller(session *remote.Session, titleID, destDir string, progress io.Writer) (string, error)
}

// Outcome describes a completed lifecycle transition.
type Outcome struct {
	TitleID        string
	Name           string
	InstallDir     string
	ExecutablePath string
}

// Orchestrator coordinates the mirror, the remote client, an installer
// backend, and the record store for one session.
type Orchestrator struct {
	Store          *store.Store
	Mirror         *library.Mirror
	Fetcher        Fetcher
	Session        *remote.Session
	BaseInstallDir string
	Progress       io.Writer // download progress sink, may be nil
}

// Download fetches the installer payload for titleID into destDir and
// returns the written path. It never touches the record store.
func (o *Orchestrator) Download(titleID, destDir string) (string, error) {
	if _, err := o.Mirror.FindByTitleID(titleID); err != nil {
		return "", err
	}
	path, err := o.Fetcher.FetchInstaller(o.Session, titleID, destDir, o.Progress)
	if err != nil {
		return "", fmt.Errorf("downloading installer for %s: %w", titleID, err)
	}
	return path, nil
}

// Install drives the full chain: download, run the backend, resolve the
// executable, then commit the record. Nothing is persisted until the final
// upsert, so a failure at any earlier step leaves the store unchanged.
func (o *Orchestrator) Install(ctx context.Context, titleID string, backend installer.Backend, strategy resolve.Strategy) (*Outcome, error) {
	entry, err := o.Mirror.FindByTitleID(titleID)
	if err != nil {
		return nil, err
	}

	stagingDir, err := os.MkdirTemp("", "attic-install-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	payload, err := o.Fetcher.FetchInstaller(o.Session, titleID, stagingDir, o.Progress)
	if err != nil {
		return nil, fmt.Errorf("downloading installer for %s: %w", titleID, err)
	}

	installDir := filepath.Join(o.BaseInstallDir, dirNameFor(entry.Name))
	result, err := backend.Install(payload, installDir)
	if err != nil {
		return nil, err
	}

	executable, err := resolve.Executable(result.Executables, strategy)
	if err != nil {
		return nil, err
	}

	// Single commit point: only a fully completed transition reaches the
	// store.
	rec := store.Record{
		TitleID:        titleID,
		Name:           entry.Name,
		InstallDir:     installDir,
		ExecutablePath: executable,
	}
	if err := o.Store.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	return &Outcome{
		TitleID:        titleID,
		Name:           entry.Name,
		InstallDir:     installDir,
		ExecutablePath: executable,
	}, nil
}

// Uninstall removes an installed title and deletes its record. The delete
// is the commit point, symmetric with Install's upsert. Works for titles
// that have left the remote catalog. Removal takes a Remover rather than
// a full Backend because deletion does not depend on the install method.
func (o *Orchestrator) Uninstall(ctx context.Context, titleID string, remover installer.Remover) (*Outcome, error) {
	res, err := o.Store.Get(ctx, store.Query{TitleID: titleID})
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotInstalled)
	}
	if err != nil {
		return nil, err
	}

	rec, err := library.ReconcileRecord(ctx, o.Store, res.Record)
	if err != nil {
		return nil, err
	}
	if !rec.Installed() {
		return nil, fmt.Errorf("title %s: %w", titleID, ErrNotInstalled)
	}

	if err := remover.Remove(rec.InstallDir); err != nil {
		return nil, err
	}

	if err := o.Store.Delete(ctx, titleID); err != nil {
		return nil, err
	}

	return &Outcome{TitleID: titleID, Name: rec.Name}, nil
}

// dirNameFor derives a directory name from a title name, flattening
// anything that would nest or escape.
func dirNameFor(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	cleaned := strings.TrimSpace(replacer.Replace(name))
	if cleaned == "" {
		cleaned = "title"
	}
	return cleaned
}
