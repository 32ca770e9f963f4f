// Package metrics records client-side API metrics with Prometheus.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"order-console/internal/core/apierror"
	"order-console/internal/core/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "order_console"

// OtherCode is the code label recorded for error codes outside the known set.
const OtherCode = "OTHER"

// defaultCodes are the client-side codes plus the codes the order API documents.
var defaultCodes = []string{
	apierror.CodeNetwork, apierror.CodeRequest, apierror.CodeUnknown,
	"ORD001", "ORD002", "ORD003",
	"PRD001", "PRD002",
	"EXT001", "DB001", "VAL001",
	"AUTH001", "AUTH002", "SYS001",
}

// Option configures a Sink.
type Option func(*Sink)

// WithKnownCodes adds error codes that get their own label value.
func WithKnownCodes(codes ...string) Option {
	return func(s *Sink) {
		for _, c := range codes {
			s.codes[c] = struct{}{}
		}
	}
}

// Sink is an events.Emitter that turns client events into Prometheus series.
type Sink struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	failures      *prometheus.CounterVec
	operations    *prometheus.CounterVec
	invalidations prometheus.Counter
	discarded     *prometheus.CounterVec

	codes map[string]struct{}
}

// New creates a Sink with its own registry, including process and Go runtime collectors.
// Failure codes outside the known set are counted under OtherCode.
func New(opts ...Option) *Sink {
	s := &Sink{
		registry: prometheus.NewRegistry(),
		codes:    make(map[string]struct{}, len(defaultCodes)),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests that received a response.",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "Duration of API requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "transport_failures_total",
				Help:      "Total number of API requests that got no response.",
			},
			[]string{"method"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "operation_failures_total",
				Help:      "Total number of failed store operations by canonical error code.",
			},
			[]string{"store", "operation", "code"},
		),
		invalidations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "invalidations_total",
				Help:      "Total number of sessions ended by a 401 response.",
			},
		),
		discarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "stale_responses_total",
				Help:      "Total number of responses discarded because a newer call superseded them.",
			},
			[]string{"store", "operation"},
		),
	}

	for _, c := range defaultCodes {
		s.codes[c] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registry.MustRegister(
		s.requests,
		s.duration,
		s.failures,
		s.operations,
		s.invalidations,
		s.discarded,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return s
}

// Emit implements events.Emitter.
func (s *Sink) Emit(_ context.Context, e events.Event) {
	switch e.Name {
	case events.RequestCompleted:
		s.requests.WithLabelValues(e.Method, strconv.Itoa(e.StatusCode)).Inc()
		s.duration.WithLabelValues(e.Method).Observe(e.Duration.Seconds())
	case events.RequestFailed:
		s.failures.WithLabelValues(e.Method).Inc()
		s.duration.WithLabelValues(e.Method).Observe(e.Duration.Seconds())
	case events.OperationFailed:
		s.operations.WithLabelValues(e.Store, e.Operation, s.codeLabel(e.Code)).Inc()
	case events.SessionInvalidated:
		s.invalidations.Inc()
	case events.StaleResponseDiscarded:
		s.discarded.WithLabelValues(e.Store, e.Operation).Inc()
	}
}

func (s *Sink) codeLabel(code string) string {
	if _, ok := s.codes[code]; ok {
		return code
	}
	return OtherCode
}

// Registry exposes the underlying registry.
func (s *Sink) Registry() *prometheus.Registry {
	return s.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
