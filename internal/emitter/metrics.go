package emitter

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/yairfalse/sagescan/pkg/record"
)

// MetricsEmitter counts emitted records via OTEL, labeled by kind.
type MetricsEmitter struct {
	meter        metric.Meter
	recordsTotal metric.Int64Counter
}

// NewMetricsEmitter creates an OTEL metrics emitter.
func NewMetricsEmitter() (*MetricsEmitter, error) {
	meter := otel.Meter("sagescan")

	recordsTotal, err := meter.Int64Counter(
		"sagescan_records_total",
		metric.WithDescription("Catalog records emitted by the scan"),
	)
	if err != nil {
		return nil, fmt.Errorf("create records counter: %w", err)
	}

	return &MetricsEmitter{
		meter:        meter,
		recordsTotal: recordsTotal,
	}, nil
}

// Emit records the record as a metric increment.
func (e *MetricsEmitter) Emit(ctx context.Context, rec record.Record) error {
	e.recordsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(rec.RecordKind())),
	))
	return nil
}

// Close is a no-op for the metrics emitter.
func (e *MetricsEmitter) Close() error {
	return nil
}
