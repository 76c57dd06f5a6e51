// Package logger wraps charmbracelet/log so every component gets a prefixed
// logger writing to the shared destination. The TUI owns stdout, so the
// destination is normally a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// sink forwards writes to the current destination, so package-level loggers
// created before SetupFile still end up in the log file.
type sink struct {
	mu sync.RWMutex
	w  io.Writer
}

func (s *sink) Write(p []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w.Write(p)
}

var (
	shared = &sink{w: io.Discard}

	mu      sync.Mutex
	level   = log.InfoLevel
	loggers []*log.Logger
)

// New creates a logger for a component
func New(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.NewWithOptions(shared, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           level,
	})
	loggers = append(loggers, l)
	return l
}

// SetOutput changes the destination and level of every component logger
func SetOutput(w io.Writer, lvl log.Level) {
	shared.mu.Lock()
	shared.w = w
	shared.mu.Unlock()

	mu.Lock()
	defer mu.Unlock()
	level = lvl
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
}

// ParseLevel accepts the usual level names; empty means info
func ParseLevel(s string) (log.Level, error) {
	if strings.TrimSpace(s) == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(strings.ToLower(s))
}

// SetupFile opens path for appending and routes all loggers to it.
// An empty path discards log output.
func SetupFile(path, levelName string) (io.Closer, error) {
	lvl, err := ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	if path == "" {
		SetOutput(io.Discard, lvl)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f, lvl)
	return f, nil
}
