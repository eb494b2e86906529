package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/atticlabs/attic/internal/config"
	"github.com/atticlabs/attic/internal/installer"
	"github.com/atticlabs/attic/internal/lifecycle"
	"github.com/spf13/cobra"
)

var (
	installID     string
	installMethod string
)

var installCmd = &cobra.Command{
	Use:   "install [name]",
	Short: "Download and install a title",
	Long: `Download a title's installer and install it with the selected backend.
The installation record is only written once the whole chain has
succeeded; a failure partway leaves your library state untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.ensureFresh(cmd.Context(), cmd.ErrOrStderr(), true); err != nil {
			return err
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		}
		titleID, err := a.pickTitleID(cmd.Context(), name, installID, false, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		baseDir, err := ensureBaseInstallDir(a.settings.BaseInstallDir, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		backend, err := installer.ForMethod(installMethod, a.settings.WinePath)
		if err != nil {
			return err
		}

		orch := &lifecycle.Orchestrator{
			Store:          a.store,
			Mirror:         a.mirror,
			Fetcher:        a.client,
			Session:        a.session,
			BaseInstallDir: baseDir,
			Progress:       cmd.ErrOrStderr(),
		}
		outcome, err := orch.Install(cmd.Context(), titleID, backend, execStrategy(cmd.InOrStdin(), cmd.OutOrStdout()))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed %s to %s\nLaunch executable: %s\n",
			outcome.Name, outcome.InstallDir, outcome.ExecutablePath)
		return nil
	},
}

// ensureBaseInstallDir returns the configured base install directory,
// collecting and persisting it on first use.
func ensureBaseInstallDir(configured string, in io.Reader, out io.Writer) (string, error) {
	if configured != "" {
		return configured, nil
	}

	fmt.Fprint(out, "Base install directory (titles are installed in subdirectories): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading install directory: %w", err)
	}
	dir := strings.TrimSpace(line)
	if dir == "" {
		return "", fmt.Errorf("base install directory must not be empty")
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving install directory: %w", err)
	}

	if err := config.Set(config.KeyBaseInstallDir, dir); err != nil {
		return "", err
	}
	fmt.Fprintf(out, "Saved %s = %s\n", config.KeyBaseInstallDir, dir)
	return dir, nil
}

func init() {
	installCmd.Flags().StringVar(&installID, "id", "", "Title ID (skips name resolution)")
	installCmd.Flags().StringVarP(&installMethod, "method", "m", installer.MethodArchive,
		fmt.Sprintf("Installation method (%s or %s)", installer.MethodArchive, installer.MethodWine))
	rootCmd.AddCommand(installCmd)
}
