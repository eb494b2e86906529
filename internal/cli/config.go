package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/atticlabs/attic/internal/config"
	"github.com/spf13/cobra"
)

var configKeys = []string{
	config.KeyBaseInstallDir,
	config.KeyWinePath,
	config.KeyAPIURL,
	config.KeyUsername,
	config.KeyPassword,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, key := range configKeys {
			value := config.Get(key)
			if key == config.KeyPassword && value != "" {
				value = strings.Repeat("*", 8)
			}
			fmt.Fprintf(w, "%s\t%s\n", key, value)
		}
		return w.Flush()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateConfigKey(args[0]); err != nil {
			return err
		}
		config.Load()
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateConfigKey(args[0]); err != nil {
			return err
		}
		config.Load()
		if err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
		return nil
	},
}

func validateConfigKey(key string) error {
	for _, known := range configKeys {
		if key == known {
			return nil
		}
	}
	return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(configKeys, ", "))
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
