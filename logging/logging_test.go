package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oirtest.log")

	log, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	log.Info("burst complete")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "burst complete") {
		t.Errorf("log file missing entry, got %q", data)
	}
}

func TestSetupAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oirtest.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := Setup(path, "info")
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	log.Info("second run")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "previous run") || !strings.Contains(content, "second run") {
		t.Errorf("expected appended log, got %q", content)
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oirtest.log")
	if _, err := Setup(path, "loud"); err == nil {
		t.Error("Setup with bad level expected error")
	}
}

func TestSetupRejectsUnwritablePath(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "oirtest.log"), "info"); err == nil {
		t.Error("Setup with unwritable path expected error")
	}
}
