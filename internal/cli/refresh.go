package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the catalog mirror from the remote service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.ensureFresh(cmd.Context(), cmd.ErrOrStderr(), false); err != nil {
			return err
		}

		entries, err := a.mirror.Entries()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog refreshed: %d titles\n", len(entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
