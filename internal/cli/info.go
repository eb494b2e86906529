package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/atticlabs/attic/internal/library"
	"github.com/spf13/cobra"
)

var (
	infoID   string
	infoJSON bool
)

var infoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show the reconciled status of one title",
	Args:  cobra.MaximumNArgs(1),
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
		titleID, err := a.pickTitleID(cmd.Context(), name, infoID, false, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		status, err := library.StatusFor(cmd.Context(), a.store, a.mirror, titleID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if infoJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Title ID:\t%s\n", status.TitleID)
		fmt.Fprintf(w, "Name:\t%s\n", status.Name)
		if status.Description != "" {
			fmt.Fprintf(w, "Description:\t%s\n", status.Description)
		}
		fmt.Fprintf(w, "In catalog:\t%t\n", status.InCatalog)
		fmt.Fprintf(w, "Installed:\t%t\n", status.Installed)
		if status.Installed {
			fmt.Fprintf(w, "Install dir:\t%s\n", status.InstallDir)
			fmt.Fprintf(w, "Executable:\t%s\n", status.Executable)
		}
		return w.Flush()
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoID, "id", "", "Title ID (skips name resolution)")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.AddCommand(infoCmd)
}
