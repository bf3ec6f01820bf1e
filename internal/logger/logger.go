// Package logger defines the logging surface used by the engine packages.
// The binary plugs in a concrete implementation; library code defaults to Discard.
package logger

// Logger interface for configurable logging
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)
}

var _ Logger = Discard{}

// Discard is a logger that does nothing
type Discard struct{}

func (Discard) Debug(...any) {}

func (Discard) Info(...any) {}

func (Discard) Warn(...any) {}

func (Discard) Error(...any) {}

func (Discard) Debugf(string, ...any) {}

func (Discard) Infof(string, ...any) {}

func (Discard) Warnf(string, ...any) {}

func (Discard) Errorf(string, ...any) {}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard{}
	}
	return l
}
