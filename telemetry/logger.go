package telemetry

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTELHook adds trace and span IDs to every log entry
type OTELHook struct{}

func (h OTELHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	// Skip if no context
	ctx := e.GetCtx()
	if ctx == nil {
		return
	}

	// Extract span from context
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return
	}

	e.Str("trace_id", span.SpanContext().TraceID().String())
	e.Str("span_id", span.SpanContext().SpanID().String())

	if level == zerolog.ErrorLevel {
		span.SetStatus(codes.Error, msg)
	}
}

// Logger wraps zerolog with OTEL integration
type Logger struct {
	zerolog.Logger
}

// NewLogger creates a new logger with OTEL hooks. Logs go to stderr;
// stdout carries the record stream.
func NewLogger(service string) *Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	logger := zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", service).
		Logger().
		Hook(OTELHook{})

	return &Logger{Logger: logger}
}

// WithContext returns a logger with context (for trace propagation)
func (l *Logger) WithContext(ctx context.Context) *zerolog.Logger {
	logger := l.Logger.With().Ctx(ctx).Logger()
	return &logger
}

// LogScanStart logs the beginning of a directory scan.
func (l *Logger) LogScanStart(ctx context.Context, region, env string) {
	l.WithContext(ctx).Info().
		Str("region", region).
		Str("env", env).
		Str("operation", "scan").
		Msg("starting scan")
}

// LogScanComplete logs the end of a directory scan with counters.
func (l *Logger) LogScanComplete(ctx context.Context, records, warnings int, durationMs float64) {
	l.WithContext(ctx).Info().
		Int("records", records).
		Int("warnings", warnings).
		Float64("duration_ms", durationMs).
		Str("operation", "scan").
		Msg("scan completed")
}

// LogScanError logs a fatal scan failure.
func (l *Logger) LogScanError(ctx context.Context, err error) {
	l.WithContext(ctx).Error().
		Err(err).
		Str("operation", "scan").
		Msg("scan failed")
}
