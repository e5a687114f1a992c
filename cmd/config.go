package cmd

import (
	"fmt"
	"net/url"

	"github.com/getsavvyinc/pdfqa-cli/config"
	"github.com/getsavvyinc/pdfqa-cli/display"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Shows the effective pdfqa configuration",
	Long: `
  Shows the backend pdfqa talks to and where it came from.

  The backend url is read from, in order: --backend, $` + config.BackendURLEnv + ` (a .env file in the
  working directory is honored), ` + config.DefaultConfigFilePath + `, and finally ` + config.DefaultBackendURL + `.
  `,
	Run: func(cmd *cobra.Command, _ []string) {
		cfg := configFromCtx(cmd.Context())
		fmt.Println("backend:", cfg.BackendURL)
		fmt.Println("config file:", config.DefaultConfigFilePath)
	},
}

var setBackendCmd = &cobra.Command{
	Use:     "set-backend <url>",
	Short:   "Saves the backend url to the config file",
	Example: "pdfqa config set-backend http://localhost:8000",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u, err := url.Parse(args[0])
		if err != nil || u.Scheme == "" || u.Host == "" {
			display.FatalErr(fmt.Errorf("invalid backend url: %q", args[0]))
		}

		cfg, err := config.LoadFromFile()
		if err != nil {
			cfg = &config.Config{}
		}
		cfg.BackendURL = args[0]
		if err := cfg.Save(); err != nil {
			display.FatalErr(fmt.Errorf("error saving config: %w", err))
		}
		display.Success("Saved backend " + args[0])
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(setBackendCmd)
}
