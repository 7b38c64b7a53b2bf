package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wonny/oddlot/pkg/config"
	"github.com/wonny/oddlot/pkg/logger"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oddlot",
	Short: "Odd-lot tender offer scanner",
	Long: `oddlot scans recent SEC tender-offer filings for odd-lot priority
provisions and alerts when the market trades at or below the offer floor.

Usage:
  go run ./cmd/oddlot [command]

Examples:
  go run ./cmd/oddlot scan
  go run ./cmd/oddlot scan --dry-run --max-results 100
  go run ./cmd/oddlot extract ./filing.txt
  go run ./cmd/oddlot quote ABC`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "env file to load before the environment (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads configuration and builds the logger shared by every command
func setup() (*config.Config, *logger.Logger, error) {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", configFile, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}
