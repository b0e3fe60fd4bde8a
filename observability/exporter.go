package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/multierr"
)

// DefaultPrometheusAddr is the listen address of the prometheus scrape
// endpoint. The metrics are served at /metrics.
const DefaultPrometheusAddr = "127.0.0.1:9464"

type metricsExporterCfg struct {
	prometheusAddr string
}

type MetricsExporterOpt func(*metricsExporterCfg)

func WithPrometheusAddr(addr string) MetricsExporterOpt {
	return func(cfg *metricsExporterCfg) {
		if len(strings.TrimSpace(addr)) > 0 {
			cfg.prometheusAddr = addr
		}
	}
}

type MetricsExporterType uint8

const (
	NoneMetrics MetricsExporterType = iota
	ConsoleMetrics
	PrometheusMetrics
)

func (t MetricsExporterType) String() string {
	switch t {
	case ConsoleMetrics:
		return "console"
	case PrometheusMetrics:
		return "prometheus"
	default:
	}
	return "none"
}

func ParseMetricsExporterType(s string) (MetricsExporterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoneMetrics, nil
	case "console":
		return ConsoleMetrics, nil
	case "prometheus":
		return PrometheusMetrics, nil
	default:
	}
	return NoneMetrics, errors.New("[observability] unknown metrics exporter " + s)
}

// NewMetricsExporter installs the global meter provider and returns
// its shutdown callback. The none exporter keeps the otel noop provider.
// The prometheus exporter serves its registry over HTTP until shutdown.
func NewMetricsExporter(typ MetricsExporterType, interval, timeout time.Duration, opts ...MetricsExporterOpt) (func(ctx context.Context) error, error) {
	cfg := &metricsExporterCfg{
		prometheusAddr: DefaultPrometheusAddr,
	}
	for _, o := range opts {
		o(cfg)
	}
	switch typ {
	case ConsoleMetrics:
		return newConsoleMetricsExporter(interval, timeout, stdoutmetric.WithPrettyPrint())
	case PrometheusMetrics:
		shutdown, _, err := newPrometheusMetricsExporter(cfg.prometheusAddr)
		return shutdown, err
	default:
	}
	return func(ctx context.Context) error { return nil }, nil
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
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
// Each exporter owns its registry, so the exporters never collide on the
// prometheus default registerer.
func newPrometheusMetricsExporter(addr string) (func(ctx context.Context) error, net.Addr, error) {
	reg := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		_ = srv.Serve(ln)
	}()

	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return func(ctx context.Context) error {
		return multierr.Combine(srv.Shutdown(ctx), mp.Shutdown(ctx))
	}, ln.Addr(), nil
}
