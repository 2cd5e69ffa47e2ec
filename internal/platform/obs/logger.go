package obs

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a structured logger tagged with the given component.
// APP_ENV=dev switches to human-readable console output; LOG_LEVEL sets the
// minimum level (default info).
func NewLogger(component string) zerolog.Logger {
	return newLogger(os.Stdout, component)
}

func newLogger(out io.Writer, component string) zerolog.Logger {
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger()
}
