package cmd

import (
	"os"

	"github.com/getsavvyinc/pdfqa-cli/config"
	"github.com/getsavvyinc/pdfqa-cli/display"
	"github.com/getsavvyinc/upgrade-cli"
	"github.com/getsavvyinc/upgrade-cli/release/asset"
	"github.com/spf13/cobra"
)

const owner = "getsavvyinc"
const repo = "pdfqa-cli"

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "upgrade pdfqa to the latest version",
	Long:  `upgrade pdfqa to the latest version`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		executablePath, err := os.Executable()
		if err != nil {
			display.FatalErr(err)
		}
		version := config.Version()

		assetDownloader := asset.NewAssetDownloader(executablePath, asset.WithLookupArchFallback(map[string]string{
			"amd64": "x86_64",
			"386":   "i386",
		}))
		upgrader := upgrade.NewUpgrader(owner, repo, executablePath, upgrade.WithAssetDownloader(assetDownloader))

		if ok, err := upgrader.IsNewVersionAvailable(ctx, version); err != nil {
			display.Error(err)
			return
		} else if !ok {
			display.Info("pdfqa is already up to date")
			return
		}

		display.Info("Upgrading pdfqa...")
		if err := upgrader.Upgrade(ctx, version); err != nil {
			display.FatalErr(err)
		}
		display.Success("pdfqa has been upgraded to the latest version")
	},
}

func init() {
	rootCmd.AddCommand(upgradeCmd)
}
