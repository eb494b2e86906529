package userdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureLayout_CreatesTree(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ATTIC_HOME", filepath.Join(tmp, "home"))
	t.Setenv("ATTIC_DOWNLOADS", "")

	if err := EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, "home", DownloadsDir))
	if err != nil {
		t.Fatalf("expected downloads dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected downloads path to be a directory")
	}
}

func TestEnsureLayout_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ATTIC_HOME", tmp)
	t.Setenv("ATTIC_DOWNLOADS", "")

	if err := EnsureLayout(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := EnsureLayout(); err != nil {
		t.Fatalf("second call: %v", err)
	}
}
