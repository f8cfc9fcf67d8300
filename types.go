package oirtest

// Re-export types from the types sub-package so callers can use
// oirtest.Driver, oirtest.PortName, etc. without a second import.

import (
	"github.com/grasshopper-automation/oirtest/types"
)

type (
	Protocol       = types.Protocol
	LinkState      = types.LinkState
	DeviceConfig   = types.DeviceConfig
	JumphostConfig = types.JumphostConfig
	Driver         = types.Driver
	CommandRunner  = types.CommandRunner
	StatusQuerier  = types.StatusQuerier
	FactsProvider  = types.FactsProvider
	PortName       = types.PortName
	DiagOp         = types.DiagOp
)

const (
	ProtocolCLI  = types.ProtocolCLI
	ProtocolSNMP = types.ProtocolSNMP
	ProtocolGNMI = types.ProtocolGNMI
	ProtocolMock = types.ProtocolMock

	LinkUp   = types.LinkUp
	LinkDown = types.LinkDown

	OpEnable  = types.OpEnable
	OpRemove  = types.OpRemove
	OpInsert  = types.OpInsert
	OpDisable = types.OpDisable
)

// ParsePortName re-exports types.ParsePortName.
func ParsePortName(name string) (PortName, error) {
	return types.ParsePortName(name)
}
