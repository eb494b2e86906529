package userdata

import (
	"fmt"
	"os"
)

// EnsureLayout creates the attic home directory tree if it does not exist.
// Safe to call on every invocation.
func EnsureLayout() error {
	root, err := HomeRoot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, DirPermSecure); err != nil {
		return fmt.Errorf("creating home directory %s: %w", root, err)
	}
	downloads, err := DownloadsRoot()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(downloads, DirPermNormal); err != nil {
		return fmt.Errorf("creating downloads directory %s: %w", downloads, err)
	}
	return nil
}
