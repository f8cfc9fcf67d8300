package types

import (
	"fmt"
	"regexp"
	"strconv"
)

// portNameRE matches Junos physical interface names like et-0/0/12,
// xe-1/2/3 or ge-0/0/0 (media type, FPC slot, PIC slot, port number).
var portNameRE = regexp.MustCompile(`^([a-z]+)-(\d+)/(\d+)/(\d+)$`)

// PortName is a parsed Junos physical interface name. The FPC/PIC/Port
// fields address the line card slot the transceiver sits in, which is
// what the picd diagnostic command wants.
type PortName struct {
	Media string
	FPC   int
	PIC   int
	Port  int
}

// ParsePortName parses an interface name of the form <media>-<fpc>/<pic>/<port>.
// Logical units (et-0/0/12.0) and non-slotted interfaces (em0, lo0) are
// rejected: they have no transceiver to pull.
func ParsePortName(name string) (PortName, error) {
	m := portNameRE.FindStringSubmatch(name)
	if m == nil {
		return PortName{}, fmt.Errorf("invalid port name %q (want <media>-<fpc>/<pic>/<port>)", name)
	}

	fpc, _ := strconv.Atoi(m[2])
	pic, _ := strconv.Atoi(m[3])
	port, _ := strconv.Atoi(m[4])

	return PortName{
		Media: m[1],
		FPC:   fpc,
		PIC:   pic,
		Port:  port,
	}, nil
}

// String returns the interface name in Junos notation.
func (p PortName) String() string {
	return fmt.Sprintf("%s-%d/%d/%d", p.Media, p.FPC, p.PIC, p.Port)
}

// DiagOp is an operation of the picd optics OIR diagnostic.
type DiagOp string

const (
	OpEnable  DiagOp = "oir_enable"
	OpRemove  DiagOp = "remove"
	OpInsert  DiagOp = "insert"
	OpDisable DiagOp = "oir_disable"
)

// DiagCommand builds the vendor diagnostic command that simulates an
// optics OIR event on this port.
func (p PortName) DiagCommand(op DiagOp) string {
	return fmt.Sprintf("test picd optics fpc_slot %d pic_slot %d port %d cmd %s",
		p.FPC, p.PIC, p.Port, op)
}

// TerseCommand builds the status-display command whose output carries
// the link state of this port.
func (p PortName) TerseCommand() string {
	return "show interfaces terse " + p.String()
}
