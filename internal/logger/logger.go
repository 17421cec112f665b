// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger.
var Logger = log.Logger

// Config controls level, output format and timestamps.
type Config struct {
	Level        string `json:"level"`       // debug, info, warn, error
	Format       string `json:"format"`      // json or pretty
	TimeFormat   string `json:"time_format"` // defaults to RFC3339
	ReportCaller bool   `json:"report_caller"`

	Out io.Writer `json:"-"` // defaults to stdout
}

// Init replaces the global logger according to config. Unknown levels fall
// back to info.
func Init(config Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := config.Out
	if out == nil {
		out = os.Stdout
	}

	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: zerolog.TimeFieldFormat,
		}
	}

	builder := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		builder = builder.Caller()
	}

	Logger = builder.Logger()
	log.Logger = Logger
	zerolog.DefaultContextLogger = &Logger
	return Logger
}

// Ctx returns the logger carried by ctx, or the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithRequestID returns a context whose logger carries the request_id field.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := Ctx(ctx).With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}
