package command

// root.go defines the root command for userctl and its global flags.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"userapi/cmd/userctl/client"
)

var apiURL string // Global flag for API server URL

var rootCmd = &cobra.Command{
	Use:   "userctl",
	Short: "userctl - command line client for the user API",
	Long: `userctl talks to a running user API server. It can:
- List registered users
- Create a user with one or more phones
- Update a user's name, password and phones
- Check the server configuration found in the environment

Use "userctl [command] --help" to see all available flags.`,
	SilenceUsage: true,
}

// Execute runs the root command; called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(configCmd)
}
