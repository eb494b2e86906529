package remote

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLogin_ReturnsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/v1/session" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-123"}`))
	}))
	defer srv.Close()

	session, err := New(srv.URL).Login("user", "pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.token != "tok-123" {
		t.Errorf("expected token tok-123, got %q", session.token)
	}
}

func TestLogin_RejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login("user", "wrong")
	if !errors.Is(err, ErrAuthExpired) {
		t.Errorf("expected ErrAuthExpired, got %v", err)
	}
}

func TestListCatalog_ParsesEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("expected bearer token, got %q", got)
		}
		w.Write([]byte(`{"entries":[
			{"title_id":"t1","name":"Alpha","description":"first"},
			{"title_id":"t2","name":"Beta","description":"second"}
		]}`))
	}))
	defer srv.Close()

	entries, err := New(srv.URL).ListCatalog(&Session{token: "tok"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].TitleID != "t1" || entries[1].Name != "Beta" {
		t.Errorf("entries parsed wrong: %+v", entries)
	}
}

func TestListCatalog_ExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListCatalog(&Session{token: "stale"})
	if !errors.Is(err, ErrAuthExpired) {
		t.Errorf("expected ErrAuthExpired, got %v", err)
	}
}

func TestListCatalog_RejectsInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// title_id missing from the first entry.
		w.Write([]byte(`{"entries":[{"name":"Alpha"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListCatalog(&Session{token: "tok"})
	if err == nil {
		t.Fatal("expected validation error for payload missing title_id")
	}
}

func TestListCatalog_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := New(srv.URL).ListCatalog(&Session{token: "tok"})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("expected *NetworkError, got %v", err)
	}
}

func TestFetchInstaller_WritesNamedFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/titles/t1/installer" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Disposition", `attachment; filename="alpha_setup.exe"`)
		w.Write([]byte("payload-bytes"))
	}))
	defer srv.Close()

	dest := t.TempDir()
	path, err := New(srv.URL).FetchInstaller(&Session{token: "tok"}, "t1", dest, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "alpha_setup.exe" {
		t.Errorf("expected name from Content-Disposition, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload-bytes" {
		t.Errorf("payload mismatch: %q", data)
	}
}

func TestFetchInstaller_FallbackFileName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	path, err := New(srv.URL).FetchInstaller(&Session{token: "tok"}, "t9", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "t9.bin" {
		t.Errorf("expected fallback name t9.bin, got %s", path)
	}
}

func TestValidateCatalog_Valid(t *testing.T) {
	result, err := ValidateCatalog([]byte(`{"entries":[{"title_id":"t1","name":"Alpha"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid payload, issues: %+v", result.Issues)
	}
}

func TestValidateCatalog_MissingEntries(t *testing.T) {
	result, err := ValidateCatalog([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Error("expected invalid payload")
	}
	if len(result.Issues) == 0 {
		t.Error("expected at least one issue")
	}
}
