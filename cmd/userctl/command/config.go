package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"userapi/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Server configuration commands",
}

var checkConfigCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the server configuration from .env and the environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "✓ Configuration is valid")
		fmt.Fprintf(out, "Environment: %s\n", cfg.GoEnv)
		fmt.Fprintf(out, "Listen: %s\n", cfg.Addr())
		fmt.Fprintf(out, "Token lifetime: %s\n", cfg.JWTExpiry)
		fmt.Fprintf(out, "Email regex: %s\n", cfg.EmailRegex)
		fmt.Fprintf(out, "Password regex: %s\n", cfg.PasswordRegex)
		fmt.Fprintf(out, "Cache enabled: %t\n", cfg.CacheEnabled())
		return nil
	},
}

func init() {
	configCmd.AddCommand(checkConfigCmd)
}
