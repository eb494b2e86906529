package cli

import (
	"fmt"

	"github.com/atticlabs/attic/internal/installer"
	"github.com/atticlabs/attic/internal/lifecycle"
	"github.com/spf13/cobra"
)

var uninstallID string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [name]",
	Short: "Remove an installed title and its record",
	Long: `Remove a title's installation directory and delete its record. The
record survives a failed removal, so a partial uninstall can be retried.
Works for titles that have since left the remote catalog.`,
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
		titleID, err := a.pickTitleID(cmd.Context(), name, uninstallID, true, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		orch := &lifecycle.Orchestrator{
			Store:   a.store,
			Mirror:  a.mirror,
			Fetcher: a.client,
			Session: a.session,
		}
		outcome, err := orch.Uninstall(cmd.Context(), titleID, installer.DirRemover{})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Uninstalled %s\n", outcome.Name)
		return nil
	},
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallID, "id", "", "Title ID (skips name resolution)")
	rootCmd.AddCommand(uninstallCmd)
}
