// Package diag is a thin logging wrapper that stamps every line with
// the component tag the handlers and services already use
// ("ERROR [pkg.Func] message: err") so the convention stays uniform
// instead of every call site hand-formatting its own prefix.
package diag

import "log"

// Logger tags every line with a fixed component name.
type Logger struct {
	component string
}

// New returns a Logger tagged with component, e.g. "recommend.PickEngine".
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) Info(format string, args ...any) {
	log.Printf("INFO ["+l.component+"] "+format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	log.Printf("ERROR ["+l.component+"] "+format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	log.Printf("WARN ["+l.component+"] "+format, args...)
}
