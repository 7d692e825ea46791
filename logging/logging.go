// Package logging configures the process-wide zerolog logger that the
// CLI sets up and engine's transactions write to. Every package that logs reaches for
// github.com/rs/zerolog/log's global logger rather than threading a
// *zerolog.Logger through call signatures, matching engine's existing
// usage.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Configure sets the global logger's level and output writer. format
// is "console" (human-readable, colorized) or "json" (structured,
// for log aggregation); anything else falls back to json.
func Configure(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	var w io.Writer = os.Stderr
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
