package userdata

import (
	"path/filepath"
	"testing"
)

func TestHomeRoot_EnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ATTIC_HOME", tmp)

	got, err := HomeRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %s, got %s", tmp, got)
	}
}

func TestRecordsPath_UnderHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ATTIC_HOME", tmp)
	t.Setenv("ATTIC_RECORDS", "")

	got, err := RecordsPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(tmp, RecordsFile)
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRecordsPath_EnvOverride(t *testing.T) {
	t.Setenv("ATTIC_RECORDS", "/elsewhere/records.db")

	got, err := RecordsPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/elsewhere/records.db" {
		t.Errorf("expected override path, got %s", got)
	}
}

func TestDownloadsRoot_UnderHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ATTIC_HOME", tmp)
	t.Setenv("ATTIC_DOWNLOADS", "")

	got, err := DownloadsRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(tmp, DownloadsDir)
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
