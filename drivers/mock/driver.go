// Package mock provides an in-memory driver that records every command
// and plays back scripted link states. It backs the unit tests and the
// --dry-run mode, where commands are logged instead of sent to hardware.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/grasshopper-automation/oirtest/types"
)

// Driver simulates a device without touching real equipment
type Driver struct {
	mu         sync.Mutex
	config     *types.DeviceConfig
	connected  bool
	cmdHistory []string
	linkScript []types.LinkState
	linkIdx    int
}

// NewDriver creates a new mock driver
func NewDriver(config *types.DeviceConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &Driver{
		config:     config,
		cmdHistory: make([]string, 0),
	}, nil
}

// Connect marks the driver connected
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if config != nil {
		d.config = config
	}
	d.connected = true
	return nil
}

// Disconnect marks the driver disconnected
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// ExecCommand records the command and returns empty output
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return "", fmt.Errorf("not connected to device")
	}

	d.cmdHistory = append(d.cmdHistory, command)
	return "", nil
}

// ScriptLinkStates sets the sequence of states LinkState will return.
// Once the script is exhausted every further call returns LinkDown, so
// an unscripted or over-polled run always terminates.
func (d *Driver) ScriptLinkStates(states ...types.LinkState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.linkScript = states
	d.linkIdx = 0
}

// LinkState plays back the scripted states
func (d *Driver) LinkState(ctx context.Context, ifName string) (types.LinkState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return "", fmt.Errorf("not connected to device")
	}

	if d.linkIdx >= len(d.linkScript) {
		return types.LinkDown, nil
	}

	state := d.linkScript[d.linkIdx]
	d.linkIdx++
	return state, nil
}

// Facts returns a canned version banner
func (d *Driver) Facts(ctx context.Context) (string, error) {
	if !d.IsConnected() {
		return "", fmt.Errorf("not connected to device")
	}
	return "Hostname: mock\nModel: mx480\nJunos: 23.2R1.13", nil
}

// CommandHistory returns a copy of all commands executed so far
func (d *Driver) CommandHistory() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	history := make([]string, len(d.cmdHistory))
	copy(history, d.cmdHistory)
	return history
}

var (
	_ types.Driver        = (*Driver)(nil)
	_ types.CommandRunner = (*Driver)(nil)
	_ types.StatusQuerier = (*Driver)(nil)
	_ types.FactsProvider = (*Driver)(nil)
)
