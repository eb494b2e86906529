package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os/exec"

	"github.com/atticlabs/attic/internal/library"
	"github.com/atticlabs/attic/internal/lifecycle"
	"github.com/atticlabs/attic/internal/store"
	"github.com/spf13/cobra"
)

var launchID string

var launchCmd = &cobra.Command{
	Use:   "launch [name]",
	Short: "Launch an installed title",
	Long: `Launch an installed title through the compatibility runtime. Resolution
works entirely against local records, so installed titles launch without
a network connection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()

		var name string
		if len(args) > 0 {
			name = args[0]
		}

		var rec store.Record
		switch {
		case launchID != "":
			res, err := a.store.Get(ctx, store.Query{TitleID: launchID})
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("title %s: %w", launchID, lifecycle.ErrNotInstalled)
			}
			if err != nil {
				return err
			}
			rec = res.Record
		case name != "":
			res, err := a.store.Get(ctx, store.Query{Name: name})
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("title %q: %w", name, lifecycle.ErrNotInstalled)
			}
			if err != nil {
				return err
			}
			if res.Duplicate {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: multiple records named %q; using %s\n", name, res.Record.TitleID)
			}
			rec = res.Record
		default:
			rec, err = pickInstalledRecord(cmd, a)
			if err != nil {
				return err
			}
		}

		rec, err = library.ReconcileRecord(ctx, a.store, rec)
		if err != nil {
			return err
		}
		if !rec.Installed() {
			return fmt.Errorf("title %s: %w", rec.TitleID, lifecycle.ErrNotInstalled)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Launching %s...\n", rec.Name)
		launch := exec.CommandContext(ctx, a.settings.WinePath, rec.ExecutablePath)
		launch.Dir = rec.InstallDir
		launch.Stdout = cmd.OutOrStdout()
		launch.Stderr = cmd.ErrOrStderr()
		if err := launch.Run(); err != nil {
			return fmt.Errorf("launching %s: %w", rec.Name, err)
		}
		return nil
	},
}

func pickInstalledRecord(cmd *cobra.Command, a *app) (store.Record, error) {
	records, err := a.store.All(cmd.Context())
	if err != nil {
		return store.Record{}, err
	}

	var installed []store.Record
	for _, rec := range records {
		if rec.Installed() {
			installed = append(installed, rec)
		}
	}
	if len(installed) == 0 {
		return store.Record{}, fmt.Errorf("no installed titles")
	}

	names := make([]string, len(installed))
	for i, rec := range installed {
		names[i] = rec.Name
	}
	idx, err := selectFromList(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout(), "Select a title to launch:", names)
	if err != nil {
		return store.Record{}, err
	}
	return installed[idx], nil
}

func init() {
	launchCmd.Flags().StringVar(&launchID, "id", "", "Title ID (skips name resolution)")
	rootCmd.AddCommand(launchCmd)
}
