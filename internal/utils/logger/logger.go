// Package logger provides the global zerolog logger for the application.
package logger

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Init configures the global logger: console output with caller info and a
// log level picked from the ENVIRONMENT variable. A .env file is loaded
// when present so local runs pick up the same settings as deployments.
//
// Call it once from main before anything logs.
func Init() {
	// missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	var logLevel zerolog.Level
	switch environment {
	case "dev", "test":
		logLevel = zerolog.TraceLevel
	case "prod":
		logLevel = zerolog.InfoLevel
	default:
		logLevel = zerolog.InfoLevel
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to info level and above")
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(lvl)); err == nil {
			logLevel = parsed
		} else {
			log.Warn().Str("LOG_LEVEL", lvl).Msg("Invalid LOG_LEVEL, keeping environment default")
		}
	}

	zerolog.SetGlobalLevel(logLevel)
	log.Debug().Str("environment", environment).Str("level", logLevel.String()).Msg("logger initialized")
}
