// Package calculation holds the future value and retirement drawdown
// calculators and the engine that runs named scenarios through them.
package calculation

// Logger is the printf-style sink the engine writes to.
// The default is a no-op; internal/logging adapts slog to it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
