package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/atticlabs/attic/internal/config"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Validate and cache your account credentials",
	Long: `Validate credentials against the remote service and cache them in the
config file so later commands can authenticate without prompting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		username := loginUsername
		if username == "" {
			fmt.Fprint(out, "Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		if username == "" {
			return fmt.Errorf("username must not be empty")
		}

		password := loginPassword
		if password == "" {
			fmt.Fprint(out, "Password: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password = strings.TrimSpace(line)
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		// Validate before caching so a typo is caught here, not on the
		// next command.
		if _, err := a.client.Login(username, password); err != nil {
			return fmt.Errorf("validating credentials: %w", err)
		}

		if err := config.Set(config.KeyUsername, username); err != nil {
			return err
		}
		if err := config.Set(config.KeyPassword, password); err != nil {
			return err
		}

		fmt.Fprintf(out, "Logged in as %s. Credentials cached in %s\n", username, config.FilePath())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	rootCmd.AddCommand(loginCmd)
}
