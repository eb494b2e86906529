package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atticlabs/attic/internal/branding"
	"github.com/atticlabs/attic/internal/config"
	"github.com/atticlabs/attic/internal/library"
	"github.com/atticlabs/attic/internal/remote"
	"github.com/atticlabs/attic/internal/store"
	"github.com/atticlabs/attic/internal/userdata"
)

// app bundles the per-invocation collaborators: settings snapshot, remote
// client, record store, and catalog mirror. The session token lives here
// for the life of the process and is never persisted.
type app struct {
	settings config.Settings
	client   *remote.Client
	session  *remote.Session
	mirror   *library.Mirror
	store    *store.Store
}

// newApp loads configuration, ensures the home layout, and opens the
// record store.
func newApp() (*app, error) {
	config.Load()
	if err := userdata.EnsureLayout(); err != nil {
		return nil, err
	}

	recordsPath, err := userdata.RecordsPath()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	settings := config.Current()
	return &app{
		settings: settings,
		client:   remote.New(settings.APIURL),
		mirror:   library.NewMirror(),
		store:    st,
	}, nil
}

func (a *app) close() {
	_ = a.store.Close()
}

// login authenticates with cached credentials. Credentials come from
// `attic login`, which validates and persists them.
func (a *app) login() error {
	if a.session != nil {
		return nil
	}
	if a.settings.Username == "" || a.settings.Password == "" {
		return fmt.Errorf("no cached credentials; run `%s login` first", branding.CLIName())
	}
	session, err := a.client.Login(a.settings.Username, a.settings.Password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	a.session = session
	return nil
}

// ensureFresh brings the session up to date once per command: log in,
// refresh the catalog mirror, seed placeholder records for new titles,
// and reconcile stored install state against the disk. Every command that
// reports or mutates install state calls this first.
//
// When allowCachedCatalog is set, a transport-level refresh failure falls
// back to a recent on-disk catalog with a warning. The refresh command
// itself must not pass it: the user asked for a remote fetch, and a
// failure has to surface as one.
func (a *app) ensureFresh(ctx context.Context, errOut io.Writer, allowCachedCatalog bool) error {
	if err := a.login(); err != nil {
		return err
	}

	entries, err := a.mirror.Refresh(a.client, a.session)
	if err != nil {
		// Only a network failure with a recent cache is recoverable;
		// anything else (auth, malformed payload) is fatal.
		var netErr *remote.NetworkError
		if !allowCachedCatalog || !errors.As(err, &netErr) {
			return fmt.Errorf("refreshing catalog: %w", err)
		}
		cachePath, pathErr := userdata.CatalogCachePath()
		if pathErr != nil || library.IsStale(cachePath, library.DefaultMaxAge) {
			return fmt.Errorf("refreshing catalog: %w", err)
		}
		cached, _, readErr := library.ReadCache(cachePath)
		if readErr != nil {
			return fmt.Errorf("refreshing catalog: %w", err)
		}
		fmt.Fprintf(errOut, "warning: catalog refresh failed (%v); using cached catalog\n", err)
		a.mirror.Prime(cached)
		entries = cached
	} else {
		// Cache write failures are non-fatal; the in-memory mirror stays
		// authoritative for this invocation.
		if cachePath, err := userdata.CatalogCachePath(); err == nil {
			if err := library.WriteCache(cachePath, entries); err != nil {
				fmt.Fprintf(errOut, "warning: %v\n", err)
			}
		}
	}

	seeds := make([]store.Seed, len(entries))
	for i, e := range entries {
		seeds[i] = store.Seed{TitleID: e.TitleID, Name: e.Name}
	}
	if err := a.store.InitializeFrom(ctx, seeds); err != nil {
		return fmt.Errorf("initializing records: %w", err)
	}

	if err := library.ReconcileAll(ctx, a.store); err != nil {
		return fmt.Errorf("reconciling install state: %w", err)
	}

	return nil
}
