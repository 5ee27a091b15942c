package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the process logger. Release mode logs JSON, anything
// else logs human readable console output.
func NewLogger(ginMode string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	level := zerolog.DebugLevel
	if ginMode == "release" {
		level = zerolog.InfoLevel
	} else {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// InitLogger installs the process logger as the global zerolog logger
func InitLogger(ginMode string) zerolog.Logger {
	logger := NewLogger(ginMode, os.Stdout)
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = logger
	return logger
}
