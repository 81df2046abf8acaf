package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger builds the process-wide zerolog logger: console-formatted,
// timestamped, tagged with app. It also installs the logger as the
// package-level default so anything logging via zerolog/log picks it
// up without needing the logger threaded through by hand.
func InitLogger(app string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

// NilLogger returns a logger that discards everything.
func NilLogger() zerolog.Logger {
	return zerolog.Nop()
}
