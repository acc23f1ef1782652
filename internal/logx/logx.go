// Package logx wires the pipeline's structured logging onto
// github.com/joeycumines/logiface, backed by
// github.com/joeycumines/izerolog and github.com/rs/zerolog. Every
// supervised worker and pipeline stage logs through a *Logger, so that
// GLASS_LOG/level/console configuration stays in one place.
package logx

import (
	"io"
	"os"

	"github.com/joeycumines/izerolog"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

// Level mirrors the configuration string accepted by LogLevel in the
// Glass root config (see internal/config).
type Level = logiface.Level

const (
	LevelError   = logiface.LevelError
	LevelWarning = logiface.LevelWarning
	LevelInfo    = logiface.LevelInformational
	LevelDebug   = logiface.LevelDebug
	LevelTrace   = logiface.LevelTrace
)

// ParseLevel maps the config file's textual log level to a Level. An
// unrecognized string defaults to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "error", "Error", "ERROR":
		return LevelError
	case "warning", "warn", "Warning", "WARN":
		return LevelWarning
	case "debug", "Debug", "DEBUG":
		return LevelDebug
	case "trace", "Trace", "TRACE":
		return LevelTrace
	default:
		return LevelInfo
	}
}

// Logger wraps a logiface.Logger[*izerolog.Event], the generic
// structured-logging front end used throughout the pipeline.
type Logger struct {
	l *logiface.Logger[*izerolog.Event]
}

// New constructs a Logger writing newline-delimited JSON to w (the
// GLASS_LOG file) at the given level. Unless console is false (the CLI's
// "noconsole" flag was given), a second human-readable
// zerolog.ConsoleWriter tee to os.Stdout is added.
func New(w io.Writer, level Level, console bool) *Logger {
	out := w
	if console {
		out = io.MultiWriter(w, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05.000Z"})
	}
	zl := zerolog.New(out).With().Timestamp().Logger()

	return &Logger{
		l: logiface.New[*izerolog.Event](
			logiface.WithLevel[*izerolog.Event](level),
			izerolog.WithZerolog(zl),
		),
	}
}

// Error starts an error-level log entry.
func (x *Logger) Error() *logiface.Builder[*izerolog.Event] { return x.l.Err() }

// Warn starts a warning-level log entry.
func (x *Logger) Warn() *logiface.Builder[*izerolog.Event] { return x.l.Warning() }

// Info starts an informational-level log entry.
func (x *Logger) Info() *logiface.Builder[*izerolog.Event] { return x.l.Info() }

// Debug starts a debug-level log entry.
func (x *Logger) Debug() *logiface.Builder[*izerolog.Event] { return x.l.Debug() }

// Trace starts a trace-level log entry.
func (x *Logger) Trace() *logiface.Builder[*izerolog.Event] { return x.l.Trace() }

// LogSink adapts Logger to the Engine integration surface's log_sink
// callback shape: a function taking a level and a message.
func (x *Logger) LogSink(level Level, msg string) {
	var b *logiface.Builder[*izerolog.Event]
	switch {
	case level <= LevelError:
		b = x.Error()
	case level <= LevelWarning:
		b = x.Warn()
	case level <= LevelInfo:
		b = x.Info()
	case level <= LevelDebug:
		b = x.Debug()
	default:
		b = x.Trace()
	}
	b.Log(msg)
}
