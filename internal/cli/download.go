package cli

import (
	"fmt"

	"github.com/atticlabs/attic/internal/lifecycle"
	"github.com/atticlabs/attic/internal/userdata"
	"github.com/spf13/cobra"
)

var (
	downloadID     string
	downloadOutput string
)

var downloadCmd = &cobra.Command{
	Use:   "download [name]",
	Short: "Download a title's installer without installing it",
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
		titleID, err := a.pickTitleID(cmd.Context(), name, downloadID, false, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		destDir := downloadOutput
		if destDir == "" {
			destDir, err = userdata.DownloadsRoot()
			if err != nil {
				return err
			}
		}

		orch := &lifecycle.Orchestrator{
			Store:    a.store,
			Mirror:   a.mirror,
			Fetcher:  a.client,
			Session:  a.session,
			Progress: cmd.ErrOrStderr(),
		}
		path, err := orch.Download(titleID, destDir)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installer saved to %s\n", path)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVar(&downloadID, "id", "", "Title ID (skips name resolution)")
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Directory to save the installer in")
	rootCmd.AddCommand(downloadCmd)
}
