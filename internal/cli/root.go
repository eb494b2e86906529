package cli

import (
	"os"

	"github.com/atticlabs/attic/internal/branding"
	"github.com/atticlabs/attic/internal/config"
	"github.com/atticlabs/attic/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps your purchased legacy titles in order: it mirrors your
remote catalog, downloads and installs titles through an archive or
compatibility-runtime backend, and tracks what is installed where.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip banners for commands that manage their own output.
		name := cmd.Name()
		if name == "version" || name == "config" || name == "get" || name == "set" {
			return
		}

		// Non-blocking banner from cached version check.
		u := updater.New(buildVersion)
		u.CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
