package logutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ParseZerologLevel maps a config string to a zerolog level. Unknown or empty
// values fall back to info.
func ParseZerologLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Setup sets the global level and, when console is true, swaps the global
// logger for a human readable one on stderr.
func Setup(level string, console bool) {
	zerolog.SetGlobalLevel(ParseZerologLevel(level))

	if console {
		log.Logger = NewConsoleLogger(os.Stderr)
	}
}

func NewConsoleLogger(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:        out,
		TimeFormat: time.TimeOnly,
	}).With().Timestamp().Logger()
}
