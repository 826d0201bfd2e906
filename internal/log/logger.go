// Package log provides the diagnostic logger.
//
// Diagnostics go to stderr or a file, never to stdout, so report output
// is unaffected by verbosity.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Logger is the structured logging surface used across the module.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Config selects where and how diagnostics are written.
type Config struct {
	Enabled bool
	JSON    bool
	// File is appended to when set; otherwise Output is used.
	File   string
	Output io.Writer
}

// New builds a logger for cfg. A disabled config yields a no-op logger.
func New(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		output = f
	}
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  cfg.JSON,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  3,
		AddSource:   false,
		Metrics:     false,
	})
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &stdLogger{logger: logger, file: file}, nil
}

type stdLogger struct {
	logger l.Logger
	file   *os.File
}

func (s *stdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

func (s *stdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

func (s *stdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

func (s *stdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes the logger and closes the log file, if any.
func (s *stdLogger) Close() error {
	err := s.logger.Close()
	if s.file != nil {
		// The underlying writer may already have closed the file.
		if cerr := s.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
			err = cerr
		}
	}
	return err
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
