package types

import (
	"context"
	"time"
)

// Protocol selects the transport used to reach the device.
type Protocol string

const (
	ProtocolCLI  Protocol = "cli"
	ProtocolSNMP Protocol = "snmp"
	ProtocolGNMI Protocol = "gnmi"
	ProtocolMock Protocol = "mock" // for testing/simulation
)

// LinkState is the operational state of a physical interface as reported
// by the device. Anything that is not LinkUp terminates the stress loop.
type LinkState string

const (
	LinkUp   LinkState = "up"
	LinkDown LinkState = "down"
)

// DeviceConfig contains connection parameters for the device under test.
type DeviceConfig struct {
	// Name is a label for log output (defaults to Address)
	Name string

	// Address is the management IP/hostname
	Address string

	// Port is the management port (0 means protocol default)
	Port int

	// Protocol is the management protocol
	Protocol Protocol

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Jumphost, when non-nil, routes the SSH connection through a bastion
	Jumphost *JumphostConfig

	// Timeout for connect and per-command operations
	Timeout time.Duration

	// Metadata contains protocol-specific settings (snmp_community, ...)
	Metadata map[string]string
}

// JumphostConfig describes an SSH bastion between us and the device.
type JumphostConfig struct {
	Address  string
	Port     int
	Username string
	Password string
}

// Driver is the connection lifecycle shared by all protocol backends.
type Driver interface {
	// Connect establishes a connection to the device
	Connect(ctx context.Context, config *DeviceConfig) error

	// Disconnect closes the connection
	Disconnect(ctx context.Context) error

	// IsConnected returns true if connected
	IsConnected() bool
}

// CommandRunner executes a raw CLI command on the device and returns its
// textual output. Only the CLI backend implements it; the picd optics
// diagnostics have no SNMP or gNMI equivalent.
type CommandRunner interface {
	ExecCommand(ctx context.Context, command string) (string, error)
}

// StatusQuerier reports the link state of a named interface. A backend
// that cannot determine the state from the device's answer returns an
// empty LinkState and a nil error; transport failures return an error.
type StatusQuerier interface {
	LinkState(ctx context.Context, ifName string) (LinkState, error)
}

// FactsProvider exposes a device identity/version summary.
type FactsProvider interface {
	Facts(ctx context.Context) (string, error)
}
