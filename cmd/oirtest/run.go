package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grasshopper-automation/oirtest"
	"github.com/grasshopper-automation/oirtest/controller"
	"github.com/grasshopper-automation/oirtest/drivers/mock"
	"github.com/grasshopper-automation/oirtest/types"
)

var dryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the OIR stress cycle until the link is no longer up",
	RunE:  runStress,
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "log diagnostic commands instead of sending them to the device")
	rootCmd.AddCommand(runCmd)
}

func runStress(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadSetup()
	if err != nil {
		return err
	}

	port, err := cfg.PortName()
	if err != nil {
		return err
	}

	// Signals cancel the pause; the burst itself is not interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	devCfg := cfg.DeviceConfig()
	protocol := devCfg.Protocol
	if dryRun {
		protocol = types.ProtocolMock
	}
	if !oirtest.SupportsDiagnostics(protocol) {
		return fmt.Errorf("protocol %q cannot run the picd optics diagnostics; the stress cycle needs cli (use %q for link checks only)",
			protocol, "oirtest check")
	}

	driver, err := oirtest.NewDriver(protocol, devCfg)
	if err != nil {
		return err
	}

	if m, ok := driver.(*mock.Driver); ok {
		// one extra burst, then stop
		m.ScriptLinkStates(types.LinkUp, types.LinkDown)
	}

	log.WithFields(map[string]interface{}{
		"device":   devCfg.Name,
		"protocol": string(protocol),
		"port":     port.String(),
	}).Info("connecting")

	if err := driver.Connect(ctx, nil); err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := driver.Disconnect(disconnectCtx); err != nil {
			log.WithError(err).Warn("disconnect failed")
		}
	}()

	runner := driver.(types.CommandRunner)
	checker := driver.(types.StatusQuerier)

	ctrl, err := controller.New(controller.Config{
		Port:       port,
		CycleCount: cfg.Test.CycleCount,
		Pause:      cfg.Pause(),
	}, runner, checker, log)
	if err != nil {
		return err
	}

	if err := ctrl.Run(ctx); err != nil {
		// Interrupted mid-cycle: try to leave the port with OIR
		// diagnostics off before reporting the interruption.
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, derr := runner.ExecCommand(cleanupCtx, port.DiagCommand(types.OpDisable)); derr != nil {
			log.WithError(derr).Warn("best-effort oir_disable failed")
		}
		return err
	}

	log.WithField("bursts", ctrl.Bursts()).Info("stress cycle finished")
	return nil
}
