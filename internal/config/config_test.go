package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet_KeepsConfigFileOwnerOnly(t *testing.T) {
	t.Setenv("ATTIC_HOME", t.TempDir())
	Load()

	if err := Set(KeyPassword, "hunter2"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(FilePath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("config file with cached credentials is readable by others: %v", perm)
	}
}

func TestSet_TightensExistingConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ATTIC_HOME", dir)

	// A file left behind with loose permissions gets tightened on write.
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("username: old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	Load()

	if err := Set(KeyUsername, "new"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0077 != 0 {
		t.Errorf("expected owner-only permissions after Set, got %v", perm)
	}
	if Get(KeyUsername) != "new" {
		t.Errorf("expected username to be updated, got %q", Get(KeyUsername))
	}
}
