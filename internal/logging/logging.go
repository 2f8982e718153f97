// Package logging builds the logrus logger shared by the ledger, the
// budget reconciler and the loaders.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Field names used across packages.
const (
	FieldModule  = "module"
	FieldOp      = "op"
	FieldMonth   = "month"
	FieldID      = "id"
	FieldKind    = "kind"
	FieldVersion = "version"
	FieldChanges = "changes"
	FieldData    = "data"
)

// Stderr as a log file name sends records to standard error instead.
const Stderr = "-"

// Options controls logger construction.
type Options struct {
	Level string // logrus level name; empty means info
	File  string // path, Stderr, or empty to discard
}

// New returns a JSON logger and a closer for its output. The closer is a
// no-op when the output is not a file.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}
	logger.SetLevel(level)

	switch opts.File {
	case "":
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}, nil
	case Stderr:
		logger.SetOutput(os.Stderr)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

// Discard returns an entry that writes nowhere.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Error logs err at error level with the failing operation and optional
// extra data.
func Error(entry *logrus.Entry, op string, err error, data any) {
	fields := logrus.Fields{FieldOp: op}
	if data != nil {
		fields[FieldData] = data
	}
	entry.WithFields(fields).Error(err.Error())
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
