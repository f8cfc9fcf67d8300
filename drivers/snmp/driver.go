package snmp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/grasshopper-automation/oirtest/types"
)

// IF-MIB columns used to resolve and read port state.
const (
	oidIfDescr      = "1.3.6.1.2.1.2.2.1.2"
	oidIfOperStatus = "1.3.6.1.2.1.2.2.1.8"
)

// Driver reads link state over SNMP. It cannot run the picd optics
// diagnostics (those are CLI-only); it only implements the status check.
type Driver struct {
	config *types.DeviceConfig
	snmp   *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP driver
func NewDriver(config *types.DeviceConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	// Default SNMP port
	if config.Port == 0 {
		config.Port = 161
	}

	// Default timeout
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes an SNMP connection
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	if config != nil {
		d.config = config
	}

	// Get SNMP version from metadata (default v2c)
	version := gosnmp.Version2c
	if v, ok := d.config.Metadata["snmp_version"]; ok {
		switch v {
		case "1":
			version = gosnmp.Version1
		case "2c":
			version = gosnmp.Version2c
		case "3":
			version = gosnmp.Version3
		}
	}

	// Get community string (default: public)
	community := "public"
	if c, ok := d.config.Metadata["snmp_community"]; ok {
		community = c
	}

	port := d.config.Port
	if port < 0 || port > 65535 {
		port = 161 // default SNMP port
	}
	snmpClient := &gosnmp.GoSNMP{
		Target:    d.config.Address,
		Port:      uint16(port), //nolint:gosec // validated above
		Community: community,
		Version:   version,
		Timeout:   d.config.Timeout,
		Retries:   3,
	}

	// For SNMPv3, set security parameters
	if version == gosnmp.Version3 {
		snmpClient.SecurityModel = gosnmp.UserSecurityModel
		snmpClient.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 d.config.Username,
			AuthenticationProtocol:   gosnmp.SHA,
			AuthenticationPassphrase: d.config.Password,
			PrivacyProtocol:          gosnmp.AES,
			PrivacyPassphrase:        d.config.Password,
		}
		snmpClient.MsgFlags = gosnmp.AuthPriv
	}

	if err := snmpClient.Connect(); err != nil {
		return fmt.Errorf("failed to connect SNMP: %w", err)
	}

	d.snmp = snmpClient

	return nil
}

// Disconnect closes the SNMP connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.snmp != nil {
		err := d.snmp.Conn.Close()
		d.snmp = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.snmp != nil
}

// LinkState implements types.StatusQuerier: walk ifDescr to find the
// ifIndex for the named port, then read its ifOperStatus.
func (d *Driver) LinkState(ctx context.Context, ifName string) (types.LinkState, error) {
	if !d.IsConnected() {
		return "", fmt.Errorf("not connected to device")
	}

	index, err := d.resolveIfIndex(ifName)
	if err != nil {
		return "", err
	}
	if index == "" {
		// Port absent from the interface table reads as no link
		return "", nil
	}

	result, err := d.snmp.Get([]string{oidIfOperStatus + "." + index})
	if err != nil {
		return "", fmt.Errorf("ifOperStatus get failed: %w", err)
	}
	if len(result.Variables) == 0 {
		return "", nil
	}

	status, ok := pduInt(result.Variables[0])
	if !ok {
		return "", nil
	}

	return operStatusToLink(status), nil
}

// resolveIfIndex walks the ifDescr column for an exact name match and
// returns the trailing index of the matching OID, or "" when not found.
func (d *Driver) resolveIfIndex(ifName string) (string, error) {
	var index string

	err := d.snmp.BulkWalk(oidIfDescr, func(pdu gosnmp.SnmpPDU) error {
		if pduString(pdu) == ifName {
			index = pdu.Name[strings.LastIndex(pdu.Name, ".")+1:]
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ifDescr walk failed: %w", err)
	}

	return index, nil
}

// operStatusToLink maps IF-MIB ifOperStatus values to a link state.
// 1 = up; everything else (down, testing, unknown, dormant, notPresent,
// lowerLayerDown) reads as down for OIR purposes.
func operStatusToLink(status int64) types.LinkState {
	if status == 1 {
		return types.LinkUp
	}
	return types.LinkDown
}

// pduString extracts a string from an SNMP PDU value
func pduString(pdu gosnmp.SnmpPDU) string {
	switch v := pdu.Value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// pduInt extracts an integer from an SNMP PDU value
func pduInt(pdu gosnmp.SnmpPDU) (int64, bool) {
	switch pdu.Value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return gosnmp.ToBigInt(pdu.Value).Int64(), true
	default:
		return 0, false
	}
}

var (
	_ types.Driver        = (*Driver)(nil)
	_ types.StatusQuerier = (*Driver)(nil)
)
