package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"
)

// JunosPromptPattern matches the Junos operational ("user@host>"),
// configuration ("user@host#") and shell ("user@host%") prompts.
var JunosPromptPattern = regexp.MustCompile(`(?m)[\w\-.@]+[%>#]\s*$`)

// pagerDisableCommand stops the Junos CLI from paginating long output.
const pagerDisableCommand = "set cli screen-length 0"

// ExpectSession wraps google/goexpect for interactive Junos CLI sessions.
type ExpectSession struct {
	expecter    *expect.GExpect
	sshClient   *ssh.Client
	promptRE    *regexp.Regexp
	timeout     time.Duration
	initialized bool
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient    *ssh.Client
	Timeout      time.Duration
	CustomPrompt *regexp.Regexp
	DisablePager bool
}

// NewExpectSession creates a new interactive CLI session using expect
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	promptRE := cfg.CustomPrompt
	if promptRE == nil {
		promptRE = JunosPromptPattern
	}

	// Spawn expect session over SSH
	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	session := &ExpectSession{
		expecter:  exp,
		sshClient: cfg.SSHClient,
		promptRE:  promptRE,
		timeout:   cfg.Timeout,
	}

	// Wait for initial prompt
	if _, _, err := exp.Expect(promptRE, cfg.Timeout); err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", err)
	}

	// Disable pager if requested (non-fatal if it fails)
	if cfg.DisablePager {
		_, _ = session.Execute(pagerDisableCommand)
	}

	session.initialized = true
	return session, nil
}

// Execute sends a command and waits for the prompt, returning the output
func (s *ExpectSession) Execute(command string) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}

	// Send command
	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	// Wait for prompt and capture output
	output, _, err := s.expecter.Expect(s.promptRE, s.timeout)
	if err != nil {
		return output, fmt.Errorf("timeout waiting for prompt after command %q: %w", command, err)
	}

	// Clean up output: remove the command echo and trailing prompt
	output = cleanOutput(output, command, s.promptRE)

	return output, nil
}

// cleanOutput removes command echo and prompt lines from output
func cleanOutput(output, command string, promptRE *regexp.Regexp) string {
	lines := strings.Split(output, "\n")
	var cleaned []string

	for i, line := range lines {
		// Skip the first line if it's the command echo
		if i == 0 && strings.Contains(line, command) {
			continue
		}
		// Skip lines that match the prompt pattern
		if promptRE.MatchString(strings.TrimSpace(line)) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	return strings.TrimSpace(result)
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}

// SetTimeout updates the command timeout
func (s *ExpectSession) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}
