// Package logging builds the zerolog loggers used by the CLI and the site.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a timestamped logger writing to w. format selects between
// JSON lines and zerolog's console writer; level is parsed with
// zerolog.ParseLevel and falls back to info when empty or unknown.
func New(level, format string, w io.Writer) zerolog.Logger {
	out := w
	if strings.EqualFold(format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// ParseLevel parses a level name, returning info for empty or unknown names.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

// SetLevel changes the process-wide minimum level. Loggers built by New keep
// their own level; the global level filters on top of it.
func SetLevel(level string) zerolog.Level {
	l := ParseLevel(level)
	zerolog.SetGlobalLevel(l)
	return l
}
