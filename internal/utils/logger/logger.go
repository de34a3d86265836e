// Package logger provides a global logger for the application
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

func initLogger(out io.Writer) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out}).With().Caller().Logger()

	// a missing .env is normal outside development
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	logLevel := LevelForEnvironment(environment)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		lvl, err := zerolog.ParseLevel(strings.ToLower(raw))
		if err != nil {
			log.Warn().Str("log_level", raw).Msg("Unknown LOG_LEVEL - keeping environment log level")
		} else {
			logLevel = lvl
			log.Info().Str("log_level", raw).Msg("LOG_LEVEL detected - overriding environment log level")
		}
	}

	zerolog.SetGlobalLevel(logLevel)

	log.Debug().Str("environment", environment).Str("level", logLevel.String()).Msg("logger initialised")
}

// LevelForEnvironment maps ENVIRONMENT to its default log level: everything
// in dev and test, info and above otherwise.
func LevelForEnvironment(environment string) zerolog.Level {
	switch strings.ToLower(environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	case "prod":
		return zerolog.InfoLevel
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
		return zerolog.InfoLevel
	}
}

// Init initializes the logger from the environment (.env is honoured).
// Logs go to stderr so stdout stays reserved for the report.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `LOG_LEVEL=debug go run ./cmd/seorank`
func Init() {
	initLogger(os.Stderr)
}
