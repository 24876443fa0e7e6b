// Package logging configures the process-wide slog logger and adapts it to
// the calculation engine's printf-style Logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	// File appends JSON records to this path. Empty logs text to Stderr.
	File  string
	Debug bool
	// Stderr overrides os.Stderr for text output.
	Stderr io.Writer
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
	logPath string
)

// Setup installs the global logger and returns a cleanup func that closes
// the log file, if any, and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	level := slog.LevelInfo
	addSource := false
	if cfg.Debug {
		level = slog.LevelDebug
		addSource = true
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   addSource,
		ReplaceAttr: utcTime,
	}

	var (
		h slog.Handler
		f *os.File
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			setDiscard()
			return nil, err
		}
		var err error
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			setDiscard()
			return nil, err
		}
		h = slog.NewJSONHandler(f, opts)
	} else {
		w := cfg.Stderr
		if w == nil {
			w = os.Stderr
		}
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)

	mu.Lock()
	global = l
	logFile = f
	logPath = cfg.File
	mu.Unlock()

	l.Debug("logger.initialized", "path", cfg.File, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		logPath = ""
		global = slog.New(slog.NewTextHandler(io.Discard, nil))
		return cerr
	}

	return cleanup, nil
}

// L returns the global logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Path returns the log file in use, or "" when logging to stderr.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile = nil
	logPath = ""
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

// CalcLogger adapts a *slog.Logger to calculation.Logger.
type CalcLogger struct {
	L *slog.Logger
}

// NewCalcLogger wraps l; nil uses the global logger at call time.
func NewCalcLogger(l *slog.Logger) CalcLogger {
	return CalcLogger{L: l}
}

func (c CalcLogger) logger() *slog.Logger {
	if c.L != nil {
		return c.L
	}
	return L()
}

func (c CalcLogger) Debugf(format string, args ...any) {
	c.logger().Debug(fmt.Sprintf(format, args...), "component", "calculation")
}

func (c CalcLogger) Infof(format string, args ...any) {
	c.logger().Info(fmt.Sprintf(format, args...), "component", "calculation")
}

func (c CalcLogger) Warnf(format string, args ...any) {
	c.logger().Warn(fmt.Sprintf(format, args...), "component", "calculation")
}

func (c CalcLogger) Errorf(format string, args ...any) {
	c.logger().Error(fmt.Sprintf(format, args...), "component", "calculation")
}
