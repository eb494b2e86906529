package installer

import (
	"fmt"
	"os"
	"os/exec"
)

// WineBackend runs the vendor's setup executable under a compatibility
// runtime, targeting the install directory. This shells out to an external
// program; any abnormal exit is an installation failure carrying the
// program's combined output.
type WineBackend struct {
	// WinePath is the compatibility runtime executable, e.g. "wine".
	WinePath string
}

// Name implements Backend.
func (b *WineBackend) Name() string { return MethodWine }

// Install implements Backend.
func (b *WineBackend) Install(payloadPath, installDir string) (*Result, error) {
	if b.WinePath == "" {
		return nil, fmt.Errorf("wine_path is not configured")
	}
	if _, err := exec.LookPath(b.WinePath); err != nil {
		return nil, fmt.Errorf("compatibility runtime %q not found: %w", b.WinePath, err)
	}
	if err := os.MkdirAll(installDir, 0755); err != nil {
		return nil, fmt.Errorf("creating install directory: %w", err)
	}

	// Silent install targeting the install directory via the runtime's
	// drive mapping.
	cmd := exec.Command(b.WinePath, payloadPath, "/S", "/D=Z:"+installDir)
	cmd.Dir = installDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Output: string(output), Err: err}
	}

	executables, err := FindExecutables(installDir)
	if err != nil {
		return nil, fmt.Errorf("scanning installation: %w", err)
	}

	return &Result{
		InstallDir:  installDir,
		Executables: executables,
		Output:      string(output),
	}, nil
}

// Remove implements Backend.
func (b *WineBackend) Remove(installDir string) error {
	return DirRemover{}.Remove(installDir)
}
