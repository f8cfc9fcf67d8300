package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grasshopper-automation/oirtest"
	"github.com/grasshopper-automation/oirtest/config"
	"github.com/grasshopper-automation/oirtest/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Query the link state of the configured port once",
	RunE:  runCheck,
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Connect to the device and show its version facts",
	RunE:  runFacts,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(factsCmd)
}

// connectDriver loads the config and connects the configured driver.
func connectDriver(ctx context.Context) (*config.Config, types.Driver, func(), error) {
	cfg, log, err := loadSetup()
	if err != nil {
		return nil, nil, nil, err
	}

	devCfg := cfg.DeviceConfig()
	driver, err := oirtest.NewDriver(devCfg.Protocol, devCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := driver.Connect(ctx, nil); err != nil {
		return nil, nil, nil, fmt.Errorf("connect failed: %w", err)
	}

	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := driver.Disconnect(disconnectCtx); err != nil {
			log.WithError(err).Warn("disconnect failed")
		}
	}
	return cfg, driver, cleanup, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, driver, cleanup, err := connectDriver(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	checker, ok := driver.(types.StatusQuerier)
	if !ok {
		return fmt.Errorf("protocol %q cannot check link state", cfg.Device.Protocol)
	}

	state, err := checker.LinkState(ctx, cfg.Test.Port)
	if err != nil {
		return fmt.Errorf("status query failed: %w", err)
	}
	if state == "" {
		state = types.LinkDown
	}

	fmt.Printf("%s %s\n", cfg.Test.Port, state)
	return nil
}

func runFacts(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	_, driver, cleanup, err := connectDriver(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	facts, ok := driver.(types.FactsProvider)
	if !ok {
		return fmt.Errorf("the configured protocol does not expose device facts; use cli")
	}

	out, err := facts.Facts(ctx)
	if err != nil {
		return fmt.Errorf("facts query failed: %w", err)
	}

	fmt.Println(out)
	return nil
}
