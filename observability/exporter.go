package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type MetricsExporter string

const (
	NoopExporter       MetricsExporter = "none"
	ConsoleExporter    MetricsExporter = "console"
	PrometheusExporter MetricsExporter = "prometheus"
)

var ErrUnknownMetricsExporter = errors.New("[observability] unknown metrics exporter")

func ParseMetricsExporter(exporter string) (MetricsExporter, error) {
	switch e := MetricsExporter(strings.ToLower(strings.TrimSpace(exporter))); e {
	case "", NoopExporter:
		return NoopExporter, nil
	case ConsoleExporter, PrometheusExporter:
		return e, nil
	default:
		return NoopExporter, ErrUnknownMetricsExporter
	}
}

// ShutdownFunc flushes and stops the installed meter provider.
type ShutdownFunc func(ctx context.Context) error

// InstallMetricsExporter sets the global meter provider for exporter.
// The noop exporter keeps the current global provider.
func InstallMetricsExporter(exporter MetricsExporter, interval time.Duration) (ShutdownFunc, error) {
	switch exporter {
	case NoopExporter:
		return func(context.Context) error { return nil }, nil
	case ConsoleExporter:
		if interval <= 0 {
			interval = 5 * time.Second
		}
		return newConsoleMetricsExporter(interval, interval)
	case PrometheusExporter:
		return newPrometheusMetricsExporter()
	default:
		return nil, ErrUnknownMetricsExporter
	}
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (ShutdownFunc, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMetricsExporter() (ShutdownFunc, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
