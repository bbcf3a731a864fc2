package shared

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics records the outcome and latency of store operations.
// A nil *StoreMetrics is valid and records nothing.
type StoreMetrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
	backend    string
}

func NewStoreMetrics(meter metric.Meter, backend DbType) (*StoreMetrics, error) {
	if meter == nil {
		return nil, nil
	}
	ops, err := meter.Int64Counter("store_operations_total",
		metric.WithDescription("Number of store operations by operation and result"))
	if err != nil {
		return nil, err
	}
	dur, err := meter.Float64Histogram("store_operation_duration_seconds",
		metric.WithDescription("Latency of store operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &StoreMetrics{operations: ops, duration: dur, backend: backend.String()}, nil
}

// Observe records one finished operation
func (m *StoreMetrics) Observe(ctx context.Context, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("backend", m.backend),
		attribute.String("operation", op),
		attribute.String("result", result),
	)
	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
