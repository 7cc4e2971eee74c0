// Package logging configures the process-wide charmbracelet logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options select where diagnostics go and how much is written.
type Options struct {
	Verbose bool
	Quiet   bool
	// File, when set, receives every log record at debug level instead of
	// stderr. The file is rotated at 10 MB with three backups kept.
	File string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger for opts. The returned closer releases the log file.
func New(opts Options, stderr io.Writer) (*log.Logger, io.Closer, error) {
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		logger := log.NewWithOptions(rotator, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			Prefix:          "beads",
		})
		logger.SetFormatter(log.LogfmtFormatter)
		return logger, rotator, nil
	}

	level := log.WarnLevel
	switch {
	case opts.Quiet:
		level = log.ErrorLevel
	case opts.Verbose:
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Level:  level,
		Prefix: "beads",
	})
	return logger, nopCloser{}, nil
}

// Setup installs the logger from New as the package default used by
// log.Debug and friends.
func Setup(opts Options) (io.Closer, error) {
	logger, closer, err := New(opts, os.Stderr)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)
	return closer, nil
}
