package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveBackend extracts a zip payload directly into the install
// directory, no external tools required.
type ArchiveBackend struct{}

// Name implements Backend.
func (b *ArchiveBackend) Name() string { return MethodArchive }

// Install implements Backend. Extraction goes to a staging directory
// beside installDir first; an existing installation is only replaced once
// the whole archive has extracted cleanly, so a failed reinstall never
// destroys what a committed record points at.
func (b *ArchiveBackend) Install(payloadPath, installDir string) (*Result, error) {
	parent := filepath.Dir(installDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("creating install parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".extract-")
	if err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)
	if err := os.Chmod(staging, 0755); err != nil {
		return nil, fmt.Errorf("preparing staging directory: %w", err)
	}

	if err := extractZip(payloadPath, staging); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}

	if err := os.RemoveAll(installDir); err != nil {
		return nil, fmt.Errorf("replacing previous installation: %w", err)
	}
	if err := os.Rename(staging, installDir); err != nil {
		return nil, fmt.Errorf("moving installation into place: %w", err)
	}

	executables, err := FindExecutables(installDir)
	if err != nil {
		return nil, fmt.Errorf("scanning installation: %w", err)
	}

	return &Result{InstallDir: installDir, Executables: executables}, nil
}

// Remove implements Backend.
func (b *ArchiveBackend) Remove(installDir string) error {
	return DirRemover{}.Remove(installDir)
}

// extractZip unpacks every entry of the archive under destDir, rejecting
// entries that would escape it.
func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		destPath := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(filepath.Separator)) {
			return fmt.Errorf("archive entry %q escapes install directory", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", f.Name, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("creating parent of %s: %w", f.Name, err)
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}

		out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm()|0600)
		if err != nil {
			rc.Close()
			return fmt.Errorf("creating %s: %w", f.Name, err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			rc.Close()
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		out.Close()
		rc.Close()
	}

	return nil
}
