// Package controller drives the OIR stress cycle: enable the optics
// diagnostic on a port, run bursts of simulated remove/insert events,
// pause, check link state and either loop or disable and stop.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grasshopper-automation/oirtest/types"
)

// State is a phase of the stress cycle.
type State string

const (
	StateIdle      State = "idle"
	StateEnabling  State = "enabling"
	StateCycling   State = "cycling"
	StateWaiting   State = "waiting"
	StateChecking  State = "checking"
	StateDisabling State = "disabling"
)

// Config holds the stress-test parameters.
type Config struct {
	// Port is the optical interface under test
	Port types.PortName

	// CycleCount is the number of remove/insert pairs per burst
	CycleCount int

	// Pause is how long to wait between a burst and the link check
	Pause time.Duration
}

// Controller runs the stress cycle against a command runner and a
// status querier. Command failures are logged but never change control
// flow: the only decision point is the link state after each pause.
type Controller struct {
	cfg     Config
	runner  types.CommandRunner
	checker types.StatusQuerier
	log     logrus.FieldLogger

	// sleep is replaceable so tests can observe pause durations
	sleep func(ctx context.Context, d time.Duration) error

	state  State
	bursts int
}

// New creates a controller. log may be nil, in which case the logrus
// standard logger is used.
func New(cfg Config, runner types.CommandRunner, checker types.StatusQuerier, log logrus.FieldLogger) (*Controller, error) {
	if runner == nil {
		return nil, fmt.Errorf("command runner is required")
	}
	if checker == nil {
		return nil, fmt.Errorf("status querier is required")
	}
	if cfg.CycleCount < 1 {
		return nil, fmt.Errorf("cycle count must be at least 1, got %d", cfg.CycleCount)
	}
	if cfg.Pause < 0 {
		return nil, fmt.Errorf("pause must not be negative")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Controller{
		cfg:     cfg,
		runner:  runner,
		checker: checker,
		log:     log.WithField("port", cfg.Port.String()),
		sleep:   sleepCtx,
		state:   StateIdle,
	}, nil
}

// Run executes the stress cycle until the link is no longer up or ctx
// is cancelled during a pause. A nil return means the cycle finished on
// its own terms: the disable command was sent after a non-up link check.
func (c *Controller) Run(ctx context.Context) error {
	c.setState(StateEnabling)
	c.diag(ctx, types.OpEnable)

	for {
		c.setState(StateCycling)
		c.burst(ctx)

		c.setState(StateWaiting)
		c.log.Infof("pausing %s before link check", c.cfg.Pause)
		if err := c.sleep(ctx, c.cfg.Pause); err != nil {
			return fmt.Errorf("interrupted during pause: %w", err)
		}

		c.setState(StateChecking)
		state := c.checkLink(ctx)
		c.log.WithField("link", string(state)).Info("link state checked")
		if state == types.LinkUp {
			continue
		}

		c.setState(StateDisabling)
		c.diag(ctx, types.OpDisable)
		c.log.WithField("bursts", c.bursts).Info("link no longer up, OIR diagnostics disabled")
		return nil
	}
}

// burst sends exactly CycleCount remove/insert pairs back to back. The
// burst never exits early: a failed command counts like any other.
func (c *Controller) burst(ctx context.Context) {
	for i := 1; i <= c.cfg.CycleCount; i++ {
		c.log.WithField("cycle", i).Debug("simulating optics removal/insertion")
		c.diag(ctx, types.OpRemove)
		c.diag(ctx, types.OpInsert)
	}
	c.bursts++
	c.log.WithField("cycles", c.cfg.CycleCount).Info("burst complete")
}

// diag sends one picd optics diagnostic. Output is discarded and errors
// only logged, preserving the unconditional-success behavior of the
// original procedure.
func (c *Controller) diag(ctx context.Context, op types.DiagOp) {
	cmd := c.cfg.Port.DiagCommand(op)
	if _, err := c.runner.ExecCommand(ctx, cmd); err != nil {
		c.log.WithError(err).WithField("cmd", cmd).Warn("diagnostic command failed, continuing")
	}
}

// checkLink queries the link state. A failed query and an unparseable
// answer both read as down; they are logged apart so a broken status
// pipeline is distinguishable from a genuinely down link in the log.
func (c *Controller) checkLink(ctx context.Context) types.LinkState {
	state, err := c.checker.LinkState(ctx, c.cfg.Port.String())
	if err != nil {
		c.log.WithError(err).Warn("status query failed, treating link as down")
		return types.LinkDown
	}
	if state == "" {
		c.log.Warn("status output unparseable, treating link as down")
		return types.LinkDown
	}
	return state
}

func (c *Controller) setState(s State) {
	c.state = s
	c.log.WithField("state", string(s)).Debug("state transition")
}

// State returns the current phase of the cycle.
func (c *Controller) State() State {
	return c.state
}

// Bursts returns how many bursts have completed.
func (c *Controller) Bursts() int {
	return c.bursts
}

// sleepCtx blocks for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
