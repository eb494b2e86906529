package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/atticlabs/attic/internal/library"
	"github.com/spf13/cobra"
)

var (
	listInstalled    bool
	listNotInstalled bool
	listJSON         bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your library with reconciled install state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.ensureFresh(cmd.Context(), cmd.ErrOrStderr(), true); err != nil {
			return err
		}

		statuses, err := library.Statuses(cmd.Context(), a.store, a.mirror)
		if err != nil {
			return err
		}

		// Both filters at once cancel out to the full list.
		if listInstalled != listNotInstalled {
			filtered := statuses[:0]
			for _, s := range statuses {
				if s.Installed == listInstalled {
					filtered = append(filtered, s)
				}
			}
			statuses = filtered
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(statuses)
		}

		if len(statuses) == 0 {
			fmt.Fprintln(out, "No titles to show.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE ID\tNAME\tSTATUS\tINSTALL DIR")
		for _, s := range statuses {
			state := "not installed"
			if s.Installed {
				state = "installed"
			}
			if !s.InCatalog {
				state += " (not in catalog)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.TitleID, s.Name, state, s.InstallDir)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "Only show installed titles")
	listCmd.Flags().BoolVar(&listNotInstalled, "not-installed", false, "Only show titles that are not installed")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.AddCommand(listCmd)
}
