package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/grasshopper-automation/oirtest/config"
	"github.com/grasshopper-automation/oirtest/logging"
	"github.com/sirupsen/logrus"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "oirtest",
	Short: "Optical OIR stress tester for Junos devices",
	Long: `oirtest repeatedly simulates pulling and reinserting an optical
transceiver on a port via the picd optics diagnostics, pausing between
bursts and checking link state, until the link is no longer up.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "oirtest.toml", "path to the TOML configuration file")
}

// loadSetup loads and validates the config and opens the shared log sink.
func loadSetup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	log, err := logging.Setup(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	// atexit flushes and closes the log sink on every path out
	atexit.Exit(0)
}
