package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/arfocus/internal/config"
	"github.com/philipparndt/arfocus/pkg/logging"
	"github.com/philipparndt/arfocus/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "arfocus",
	Short: "Resolve world positions and replay the AR focus indicator",
	Long: `arfocus runs the world-position resolver and the focus indicator on
recorded tracking sessions. A recording holds camera poses, feature points,
detected planes and light estimates per frame.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (TOML or YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		loaded.Logging.Format = logFormat
	}

	logger, err := logging.New(loaded.Logging.Level, loaded.Logging.Format, os.Stderr)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)

	cfg = loaded
	if configPath != "" {
		logger.Debug("configuration loaded", "path", configPath)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
