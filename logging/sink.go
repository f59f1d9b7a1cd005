package logging

import (
	"context"
	"log/slog"
)

// Sink receives every event reported by the loaders.
// A nil Sink discards events.
type Sink func(severity Severity, code Code, message string)

// Nop discards everything.
func Nop(Severity, Code, string) {}

// Report calls s, if not nil.
func (s Sink) Report(severity Severity, code Code, message string) {
	if s == nil {
		return
	}
	s(severity, code, message)
}

// Info reports an informational message, without code.
func (s Sink) Info(message string) { s.Report(Info, NoError, message) }

// Slog returns a Sink writing to l. Critical events are
// logged at error level with severity=Critical.
func Slog(l *slog.Logger) Sink {
	if l == nil {
		return Nop
	}
	return func(severity Severity, code Code, message string) {
		attrs := []slog.Attr{slog.String("severity", severity.String())}
		if code != NoError {
			attrs = append(attrs, slog.String("code", code.String()))
		}
		l.LogAttrs(context.Background(), severity.level(), message, attrs...)
	}
}

func (s Severity) level() slog.Level {
	switch s {
	case Info:
		return slog.LevelInfo
	case Warn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Event is one reported event, as stored by a Recorder.
type Event struct {
	Severity Severity
	Code     Code
	Message  string
}

// Recorder keeps every event it receives. Use its Sink method
// to plug it into a loader.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Sink() Sink {
	return func(severity Severity, code Code, message string) {
		r.Events = append(r.Events, Event{severity, code, message})
	}
}

// Failures returns the events with a severity of Warn or more.
func (r *Recorder) Failures() []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Severity >= Warn {
			out = append(out, e)
		}
	}
	return out
}
