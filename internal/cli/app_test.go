package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/atticlabs/attic/internal/config"
	"github.com/atticlabs/attic/internal/library"
	"github.com/atticlabs/attic/internal/remote"
	"github.com/atticlabs/attic/internal/store"
	"github.com/atticlabs/attic/internal/userdata"
)

// unreachableCatalog answers the login endpoint but fails every other
// request at the transport level, simulating a dropped connection.
type unreachableCatalog struct{}

func (unreachableCatalog) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasSuffix(req.URL.Path, "/v1/session") {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`{"token":"tok"}`)),
		}, nil
	}
	return nil, errors.New("connection refused")
}

func newOfflineApp(t *testing.T) *app {
	t.Helper()
	t.Setenv("ATTIC_HOME", t.TempDir())

	recordsPath, err := userdata.RecordsPath()
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(recordsPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	client := remote.New("http://svc.invalid",
		remote.WithHTTPClient(&http.Client{Transport: unreachableCatalog{}}))
	return &app{
		settings: config.Settings{Username: "user", Password: "pw"},
		client:   client,
		mirror:   library.NewMirror(),
		store:    st,
	}
}

func writeCatalogCache(t *testing.T, entries []remote.CatalogEntry) {
	t.Helper()
	cachePath, err := userdata.CatalogCachePath()
	if err != nil {
		t.Fatal(err)
	}
	if err := library.WriteCache(cachePath, entries); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureFresh_FallsBackToCachedCatalog(t *testing.T) {
	a := newOfflineApp(t)
	writeCatalogCache(t, []remote.CatalogEntry{{TitleID: "t1", Name: "Alpha Station"}})

	var warnings bytes.Buffer
	if err := a.ensureFresh(context.Background(), &warnings, true); err != nil {
		t.Fatalf("expected fallback to cached catalog, got %v", err)
	}

	if _, err := a.mirror.FindByTitleID("t1"); err != nil {
		t.Errorf("cached entry missing from mirror: %v", err)
	}
	if !strings.Contains(warnings.String(), "cached catalog") {
		t.Errorf("expected a fallback warning, got %q", warnings.String())
	}

	// The cached entry is seeded into the record store like a live one.
	if _, err := a.store.Get(context.Background(), store.Query{TitleID: "t1"}); err != nil {
		t.Errorf("expected seeded record for cached entry: %v", err)
	}
}

func TestEnsureFresh_FetchFailureSurfacesWhenFallbackDisabled(t *testing.T) {
	a := newOfflineApp(t)
	writeCatalogCache(t, []remote.CatalogEntry{{TitleID: "t1", Name: "Alpha Station"}})

	err := a.ensureFresh(context.Background(), io.Discard, false)
	if err == nil {
		t.Fatal("expected fetch failure to surface when the fallback is disabled")
	}
	var netErr *remote.NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("expected a network error, got %v", err)
	}
}

func TestEnsureFresh_NoCacheFailsEvenWithFallback(t *testing.T) {
	a := newOfflineApp(t)

	if err := a.ensureFresh(context.Background(), io.Discard, true); err == nil {
		t.Fatal("expected error when the catalog is unreachable and no cache exists")
	}

	// Nothing should have been written at the cache path.
	cachePath, err := userdata.CatalogCachePath()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := library.ReadCache(cachePath); err == nil {
		t.Error("no cache should exist after a failed refresh")
	}
}
