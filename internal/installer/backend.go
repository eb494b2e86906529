package installer

import (
	"fmt"
	"os"
	"strings"
)

// Method names accepted on the command line.
const (
	MethodArchive = "archive"
	MethodWine    = "wine"
)

// Result describes a completed backend installation.
type Result struct {
	InstallDir  string
	Executables []string // candidate executables found under InstallDir
	Output      string   // diagnostic output produced by the backend
}

// Remover deletes an installation directory. Removal does not depend on
// the method that created the installation, so uninstall flows take this
// narrower interface instead of a full Backend.
type Remover interface {
	Remove(installDir string) error
}

// Backend installs a downloaded payload into a directory and can remove a
// previous installation.
type Backend interface {
	// Name identifies the backend in records and messages.
	Name() string

	// Install materializes the payload under installDir, creating the
	// directory if needed. It must not touch any state outside installDir.
	Install(payloadPath, installDir string) (*Result, error)

	// Remove deletes an installation created by this backend. Removing an
	// absent installation is a no-op.
	Remove(installDir string) error
}

// BackendError is an installation failure reported by a backend, carrying
// whatever diagnostics it produced.
type BackendError struct {
	Backend string
	Output  string
	Err     error
}

func (e *BackendError) Error() string {
	msg := fmt.Sprintf("%s backend failed: %v", e.Backend, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// DirRemover removes an installation directory regardless of which
// backend created it. Removing an absent installation is a no-op.
type DirRemover struct{}

// Remove implements Remover.
func (DirRemover) Remove(installDir string) error {
	if err := os.RemoveAll(installDir); err != nil {
		return fmt.Errorf("removing installation: %w", err)
	}
	return nil
}

// ForMethod returns the backend for a method name. An empty method selects
// archive extraction, the common case for legacy titles shipped as zips.
func ForMethod(method, winePath string) (Backend, error) {
	switch method {
	case "", MethodArchive:
		return &ArchiveBackend{}, nil
	case MethodWine:
		return &WineBackend{WinePath: winePath}, nil
	default:
		return nil, fmt.Errorf("unknown installation method %q (want %s or %s)", method, MethodArchive, MethodWine)
	}
}
