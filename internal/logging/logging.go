// Package logging builds the logrus logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "MATHQUEST_LOG_LEVEL"

// New returns a text-formatted logger writing to w at level. An empty
// level means info.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(lvl)
	return log, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OpenFile creates a logger appending to dir/mathquest.log with the level
// from MATHQUEST_LOG_LEVEL. The terminal belongs to the TUI, so diagnostics
// go to a file. Close the returned file when done.
func OpenFile(dir string) (*logrus.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "mathquest.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := New(f, os.Getenv(EnvLevel))
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f, nil
}
