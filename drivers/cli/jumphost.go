package cli

import (
	"fmt"

	"golang.org/x/crypto/ssh"

	"github.com/grasshopper-automation/oirtest/types"
)

// dialThroughJumphost opens an SSH connection to target tunneled through
// the configured bastion. Both clients are returned so the caller can
// close the hop when the device session ends.
func dialThroughJumphost(jump *types.JumphostConfig, target string, deviceConfig *ssh.ClientConfig) (device, bastion *ssh.Client, err error) {
	port := jump.Port
	if port == 0 {
		port = 22
	}

	jumpConfig := &ssh.ClientConfig{
		User: jump.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(jump.Password),
		},
		Timeout:         deviceConfig.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // lab equipment, keys churn on RE swaps
	}

	jumpAddr := fmt.Sprintf("%s:%d", jump.Address, port)
	bastion, err = ssh.Dial("tcp", jumpAddr, jumpConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial jumphost %s: %w", jumpAddr, err)
	}

	conn, err := bastion.Dial("tcp", target)
	if err != nil {
		bastion.Close()
		return nil, nil, fmt.Errorf("failed to reach %s via jumphost: %w", target, err)
	}

	ncc, chans, reqs, err := ssh.NewClientConn(conn, target, deviceConfig)
	if err != nil {
		conn.Close()
		bastion.Close()
		return nil, nil, fmt.Errorf("SSH handshake with %s via jumphost failed: %w", target, err)
	}

	return ssh.NewClient(ncc, chans, reqs), bastion, nil
}
