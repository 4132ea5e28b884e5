// Package logging configures the logrus logger shared by the client and the front ends.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options controls Setup
type Options struct {
	// Level is a logrus level name. Empty means warn.
	Level string
	// Verbose forces debug level
	Verbose bool
	// JSON switches to the JSON formatter
	JSON bool
	// Dir, when set, sends output to Dir/YYYY-MM-DD.log instead of Output
	Dir string
	// Output defaults to stderr
	Output io.Writer
	// Fs is where log files are created; defaults to the OS filesystem
	Fs afero.Fs
}

// Setup returns a logger configured from opts. The returned closer
// releases the log file, if any.
func Setup(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	closer := func() error { return nil }

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, closer, err
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05",
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.Dir != "" {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if err := fs.MkdirAll(opts.Dir, 0o700); err != nil {
			return nil, closer, fmt.Errorf("failed to create log directory: %w", err)
		}

		path := filepath.Join(opts.Dir, time.Now().Format("2006-01-02")+".log")
		f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closer, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f.Close
	}
	logger.SetOutput(out)

	return logger, closer, nil
}

// ParseLevel parses a level name, treating empty as warn
func ParseLevel(name string) (logrus.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return logrus.WarnLevel, nil
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.WarnLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything, for tests and defaults
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
