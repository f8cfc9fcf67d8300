// Package logging sets up the shared log sink: everything written to
// stdout is mirrored into an append-only file that lives for the whole
// process. The file is closed through an atexit hook so it is flushed on
// every exit path, including signal-driven termination.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// Setup opens the append-only log file and returns a logger writing to
// both stdout and the file. The returned logger is also installed as the
// logrus standard logger so package-level helpers share the sink.
func Setup(path, level string) (*logrus.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	atexit.Register(func() {
		_ = f.Sync()
		_ = f.Close()
	})

	log := logrus.StandardLogger()
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	return log, nil
}
