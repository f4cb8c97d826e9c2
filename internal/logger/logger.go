package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the printf-style helpers the rest of
// the tool uses.
type Logger struct {
	zerolog.Logger
}

// New creates a logger that writes human-readable output to stderr.
func New(verbose bool) *Logger {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return &Logger{configure(zerolog.New(out), verbose)}
}

// NewWriter creates a logger that writes structured output to the provided
// writer, e.g. a log file.
func NewWriter(w io.Writer, verbose bool) *Logger {
	return &Logger{configure(zerolog.New(w), verbose)}
}

func configure(l zerolog.Logger, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return l.Level(level).With().Timestamp().Logger()
}

// Printf logs a formatted message at info level.
func (l *Logger) Printf(format string, v ...interface{}) {
	l.Info().Msgf(format, v...)
}

// Println logs a message at info level.
func (l *Logger) Println(v ...interface{}) {
	l.Info().Msg(fmt.Sprint(v...))
}

// Debugf logs a formatted message at debug level, shown only in verbose
// mode.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.Debug().Msgf(format, v...)
}
