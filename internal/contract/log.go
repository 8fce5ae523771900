package contract

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger backs LogFatal and LogWarn until SetLogger installs the configured one.
var logger = NewLogger(os.Stderr, zerolog.InfoLevel, false)

// NewLogger builds a zerolog logger writing to w. Console mode produces
// human-readable lines; otherwise every entry is one JSON object.
func NewLogger(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetLogger replaces the package logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Logger returns the package logger.
func Logger() *zerolog.Logger {
	return &logger
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.Fatal().Err(err).Msg(msg)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	logger.Warn().Err(err).Msg(msg)
}
