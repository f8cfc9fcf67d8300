package gnmi

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	gnmipb "github.com/openconfig/gnmi/proto/gnmi"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/grasshopper-automation/oirtest/types"
)

// Driver reads link state from the OpenConfig interface model over gNMI.
// Like SNMP it is status-only; the picd optics diagnostics stay on the CLI.
type Driver struct {
	config     *types.DeviceConfig
	conn       *grpc.ClientConn
	gnmiClient gnmipb.GNMIClient
}

// NewDriver creates a new gNMI driver
func NewDriver(config *types.DeviceConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	// Default gNMI port (Junos default for extension-service)
	if config.Port == 0 {
		config.Port = 9339
	}

	// Default timeout
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// Connect establishes a gRPC connection to the device
func (d *Driver) Connect(ctx context.Context, config *types.DeviceConfig) error {
	if config != nil {
		d.config = config
	}

	var opts []grpc.DialOption
	if d.config.Metadata["tls"] == "true" {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: d.config.Metadata["tls_skip_verify"] == "true", //nolint:gosec // user-controlled
		}
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	} else {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}
	opts = append(opts, grpc.WithBlock()) //nolint:staticcheck // supported throughout 1.x

	target := fmt.Sprintf("%s:%d", d.config.Address, d.config.Port)

	connectCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	conn, err := grpc.DialContext(connectCtx, target, opts...) //nolint:staticcheck // supported throughout 1.x
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", target, err)
	}

	d.conn = conn
	d.gnmiClient = gnmipb.NewGNMIClient(conn)

	return nil
}

// Disconnect closes the gRPC connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.conn != nil {
		err := d.conn.Close()
		d.conn = nil
		d.gnmiClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.conn != nil
}

// LinkState implements types.StatusQuerier via a gNMI Get of
// /interfaces/interface[name=<port>]/state/oper-status.
func (d *Driver) LinkState(ctx context.Context, ifName string) (types.LinkState, error) {
	if d.gnmiClient == nil {
		return "", fmt.Errorf("not connected to device")
	}

	ctx = d.addAuthMetadata(ctx)

	getReq := &gnmipb.GetRequest{
		Path:     []*gnmipb.Path{operStatusPath(ifName)},
		Encoding: gnmipb.Encoding_JSON_IETF,
	}

	getCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	resp, err := d.gnmiClient.Get(getCtx, getReq)
	if err != nil {
		return "", fmt.Errorf("gNMI Get failed: %w", err)
	}

	for _, notification := range resp.Notification {
		for _, update := range notification.Update {
			if state := linkFromTypedValue(update.Val); state != "" {
				return state, nil
			}
		}
	}

	// No usable update in the response reads as no link
	return "", nil
}

// addAuthMetadata attaches username/password gRPC metadata when configured
func (d *Driver) addAuthMetadata(ctx context.Context) context.Context {
	if d.config.Username != "" {
		ctx = metadata.AppendToOutgoingContext(ctx,
			"username", d.config.Username,
			"password", d.config.Password,
		)
	}
	return ctx
}

// operStatusPath builds the OpenConfig oper-status path for a port
func operStatusPath(ifName string) *gnmipb.Path {
	return &gnmipb.Path{
		Elem: []*gnmipb.PathElem{
			{Name: "interfaces"},
			{Name: "interface", Key: map[string]string{"name": ifName}},
			{Name: "state"},
			{Name: "oper-status"},
		},
	}
}

// linkFromTypedValue maps an oper-status leaf to a link state. OpenConfig
// reports UP, DOWN, TESTING, NOT_PRESENT or LOWER_LAYER_DOWN; only UP
// counts as link up.
func linkFromTypedValue(tv *gnmipb.TypedValue) types.LinkState {
	if tv == nil {
		return ""
	}

	var raw string
	switch v := tv.Value.(type) {
	case *gnmipb.TypedValue_StringVal:
		raw = v.StringVal
	case *gnmipb.TypedValue_AsciiVal:
		raw = v.AsciiVal
	case *gnmipb.TypedValue_JsonIetfVal:
		raw = strings.Trim(string(v.JsonIetfVal), `"`)
	case *gnmipb.TypedValue_JsonVal:
		raw = strings.Trim(string(v.JsonVal), `"`)
	default:
		return ""
	}

	if strings.EqualFold(raw, "UP") {
		return types.LinkUp
	}
	if raw == "" {
		return ""
	}
	return types.LinkDown
}

var (
	_ types.Driver        = (*Driver)(nil)
	_ types.StatusQuerier = (*Driver)(nil)
)
