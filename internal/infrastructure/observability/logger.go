package observability

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// InitLogger configures the process-wide zerolog logger. Development gets
// a human-readable console writer at debug level; any other environment
// emits JSON suited for log shipping.
func InitLogger(service, env string) {
	zerolog.TimeFieldFormat = time.RFC3339

	base := zerolog.New(os.Stdout)
	if env == "development" {
		base = base.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.Kitchen,
		})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = base.With().
		Timestamp().
		Str("service", service).
		Logger()
}

// LoggerFromContext returns the global logger enriched with the trace and
// span ids of the active span. Without a recording span it returns the
// global logger unchanged.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return &log.Logger
	}
	logger := log.Logger.With().
		Str("trace_id", sc.TraceID().String()).
		Str("span_id", sc.SpanID().String()).
		Logger()
	return &logger
}

// GetLogger returns the process-wide logger
func GetLogger() *zerolog.Logger {
	return &log.Logger
}
