// Package logger provides verbose logging for placepick.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr through charmbracelet/log so users can follow the
// lookup pipeline. Nothing is printed otherwise.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

const prefix = "placepick"

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.DebugLevel,
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Debugf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Infof(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Warnf(format, args...)
	}
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Errorf(format, args...)
	}
}

// Leveled adapts the package logger to libraries that log with a message
// and key/value pairs, such as retryablehttp's LeveledLogger.
type Leveled struct {
	// Component is added as a "component" key to every entry.
	Component string
}

// Debug logs at debug level.
func (l Leveled) Debug(msg string, keysAndValues ...any) {
	l.log(log.DebugLevel, msg, keysAndValues)
}

// Info logs at info level.
func (l Leveled) Info(msg string, keysAndValues ...any) {
	l.log(log.InfoLevel, msg, keysAndValues)
}

// Warn logs at warn level.
func (l Leveled) Warn(msg string, keysAndValues ...any) {
	l.log(log.WarnLevel, msg, keysAndValues)
}

// Error logs at error level.
func (l Leveled) Error(msg string, keysAndValues ...any) {
	l.log(log.ErrorLevel, msg, keysAndValues)
}

func (l Leveled) log(level log.Level, msg string, keysAndValues []any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if l.Component != "" {
		keysAndValues = append([]any{"component", l.Component}, keysAndValues...)
	}
	base.Log(level, msg, keysAndValues...)
}
