// Package logging builds the slog.Logger used across Tessel.
//
// The terminal belongs to the UI while an app runs, so log records go to a
// file through a charmbracelet/log handler. With no file configured the
// logger discards everything.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// Options configures New.
type Options struct {
	// File is the log file path. Empty discards records.
	File string

	// Level is one of debug, info, warn, error.
	Level string

	// Prefix is printed before every message.
	Prefix string
}

// New returns a logger writing to opts.File and a close function for it.
func New(opts Options) (*slog.Logger, func() error, error) {
	if opts.File == "" {
		return Discard(), func() error { return nil }, nil
	}

	if dir := filepath.Dir(opts.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewWriter(f, opts), f.Close, nil
}

// NewWriter returns a logger writing to w.
func NewWriter(w io.Writer, opts Options) *slog.Logger {
	level, err := clog.ParseLevel(opts.Level)
	if err != nil {
		level = clog.InfoLevel
	}
	handler := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          opts.Prefix,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(clog.NewWithOptions(io.Discard, clog.Options{Level: clog.FatalLevel}))
}
