package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newspulse",
	Short: "NewsPulse - news-to-price impact scoring engine",
	Long: `NewsPulse Unified CLI

Scores company headlines against subsequent price action: provisional
expected-impact scores at ingestion, realized measurement once the
market has had time to react.

Usage:
  go run ./cmd/newspulse [command]

Examples:
  go run ./cmd/newspulse api
  go run ./cmd/newspulse scan
  go run ./cmd/newspulse measure
  go run ./cmd/newspulse scheduler start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
