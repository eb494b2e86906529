package cli

import (
	"fmt"

	"github.com/atticlabs/attic/internal/branding"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", branding.CLIName(), buildVersion)
		if buildCommit != "" {
			fmt.Fprintf(out, "commit: %s\n", buildCommit)
		}
		if buildDate != "" {
			fmt.Fprintf(out, "built:  %s\n", buildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
