// Package textparse extracts fields from positional CLI output.
//
// Network CLI show commands emit column-aligned text with no machine
// contract; callers that depend on it name the exact line and field they
// consume so the dependency is visible and testable.
package textparse

import (
	"regexp"
	"strings"
)

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a string.
// Useful for parsing CLI output that may contain terminal formatting.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Field returns the field at the given line and field position of text.
// Lines are split on "\n", fields on any run of whitespace; both indexes
// are 1-based. ok is false when the line or the field does not exist,
// including when text is empty. Trailing carriage returns are ignored so
// CRLF output from a PTY parses the same as LF output.
func Field(text string, line, field int) (string, bool) {
	if line < 1 || field < 1 {
		return "", false
	}

	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return "", false
	}

	fields := strings.Fields(strings.TrimRight(lines[line-1], "\r"))
	if field > len(fields) {
		return "", false
	}

	return fields[field-1], true
}
