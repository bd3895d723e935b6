package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type Fields map[string]interface{}

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// SetLevel adjusts the global log level. Unknown values fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func emit(ev *zerolog.Event, msg string, fields Fields) {
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	ev.Msg(msg)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit(logger.Info(), msg, fields)
}

// Warn logs a warning with optional fields.
func Warn(msg string, fields Fields) {
	emit(logger.Warn(), msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	ev := logger.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	emit(ev, msg, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	ev := logger.Fatal()
	if err != nil {
		ev = ev.Err(err)
	}
	emit(ev, msg, fields)
}
