package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger routes the global zerolog logger to a console writer. Passing
// nil writes to stderr so stdout stays free for command output.
func InitLogger(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// DefaultLevel applies when --log-level cannot be parsed.
const DefaultLevel = zerolog.WarnLevel

// SetLogLevel sets the global level. An unknown name keeps the CLI at warn
// and says so instead of silently going verbose.
func SetLogLevel(name string) {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		zerolog.SetGlobalLevel(DefaultLevel)
		log.Warn().Str("requested", name).Str("using", DefaultLevel.String()).Msg("Unknown log level.")
		return
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Str("level", level.String()).Msg("Log level set.")
}
