// Package oirtest stress-tests the OIR (online insertion/removal) path
// of an optical transceiver on a Junos device: it drives bursts of
// simulated remove/insert diagnostics on a port and watches the link.
package oirtest

import (
	"fmt"

	"github.com/grasshopper-automation/oirtest/drivers/cli"
	"github.com/grasshopper-automation/oirtest/drivers/gnmi"
	"github.com/grasshopper-automation/oirtest/drivers/mock"
	"github.com/grasshopper-automation/oirtest/drivers/snmp"
)

// protocolCapabilities records what each backend can do. Only the CLI
// (and the mock) can run the picd optics diagnostics; SNMP and gNMI are
// link-check backends.
var protocolCapabilities = map[Protocol]struct {
	RunsDiagnostics bool
	ChecksLink      bool
}{
	ProtocolCLI:  {RunsDiagnostics: true, ChecksLink: true},
	ProtocolSNMP: {ChecksLink: true},
	ProtocolGNMI: {ChecksLink: true},
	ProtocolMock: {RunsDiagnostics: true, ChecksLink: true},
}

// NewDriver creates a driver for the given protocol. The concrete type
// behind the Driver also implements StatusQuerier, and for cli/mock the
// CommandRunner and FactsProvider interfaces; callers assert for what
// they need (SupportsDiagnostics tells them in advance).
func NewDriver(protocol Protocol, config *DeviceConfig) (Driver, error) {
	if protocol == "" {
		protocol = ProtocolCLI
	}

	switch protocol {
	case ProtocolCLI:
		return cli.NewDriver(config)
	case ProtocolSNMP:
		return snmp.NewDriver(config)
	case ProtocolGNMI:
		return gnmi.NewDriver(config)
	case ProtocolMock:
		return mock.NewDriver(config)
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}

// SupportsDiagnostics reports whether the protocol can issue the picd
// optics diagnostic commands the stress loop needs.
func SupportsDiagnostics(protocol Protocol) bool {
	return protocolCapabilities[protocol].RunsDiagnostics
}

// SupportedProtocols returns the protocols NewDriver accepts.
func SupportedProtocols() []Protocol {
	protocols := make([]Protocol, 0, len(protocolCapabilities))
	for p := range protocolCapabilities {
		protocols = append(protocols, p)
	}
	return protocols
}
