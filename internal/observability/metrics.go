// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpgo/nestegg/internal/domain"
	"github.com/rpgo/nestegg/internal/storage"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the application. Each instance
// owns its registry so that tests and embedded servers never collide.
type Metrics struct {
	Registry *prometheus.Registry

	CalculationsTotal  *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	StoreOperations    *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "nestegg"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		CalculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "calculation",
			Name:      "runs_total",
			Help:      "Total number of calculator runs by calculator and outcome",
		}, []string{"calculator", "outcome"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "failures_total",
			Help:      "Total number of forms that failed validation",
		}),
		StoreOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of input store operations by operation and outcome",
		}, []string{"op", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// RecordCalculation counts a calculator run. InvalidArgument errors are
// counted as invalid, anything else as error.
func (m *Metrics) RecordCalculation(calculator string, err error) {
	m.CalculationsTotal.WithLabelValues(calculator, outcome(err)).Inc()
}

// RecordValidation counts a failed validation.
func (m *Metrics) RecordValidation(res domain.ValidationResult) {
	if !res.IsValid {
		m.ValidationFailures.Inc()
	}
}

// RecordRequest observes one HTTP request.
func (m *Metrics) RecordRequest(route, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidArgument):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// InstrumentedStore counts every operation of the wrapped store.
type InstrumentedStore struct {
	storage.InputStore
	m *Metrics
}

// InstrumentStore wraps s so that each operation is counted in m.
func InstrumentStore(s storage.InputStore, m *Metrics) *InstrumentedStore {
	return &InstrumentedStore{InputStore: s, m: m}
}

func (s *InstrumentedStore) Save(ctx context.Context, in domain.Inputs) error {
	err := s.InputStore.Save(ctx, in)
	s.m.StoreOperations.WithLabelValues(storage.OpSave, outcome(err)).Inc()
	return err
}

func (s *InstrumentedStore) Load(ctx context.Context) (domain.Inputs, error) {
	in, err := s.InputStore.Load(ctx)
	s.m.StoreOperations.WithLabelValues(storage.OpLoad, outcome(err)).Inc()
	return in, err
}

func (s *InstrumentedStore) Reset(ctx context.Context) (domain.Inputs, error) {
	in, err := s.InputStore.Reset(ctx)
	s.m.StoreOperations.WithLabelValues(storage.OpReset, outcome(err)).Inc()
	return in, err
}
