package observability

import (
	"time"

	"github.com/boddenberg/precifica-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the pricing service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	storeErrors      *prometheus.CounterVec
	reportsBuilt     *prometheus.CounterVec
	productsPriced   *prometheus.CounterVec
	infeasibleQuotes *prometheus.CounterVec
	mutations        *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "precifica_operation_duration_seconds",
				Help:    "Duration of service operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precifica_store_errors_total",
				Help: "Total errors returned by the persistence backend.",
			},
			[]string{"operation"},
		),
		reportsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precifica_reports_total",
				Help: "Total pricing reports evaluated.",
			},
			[]string{"kind"},
		),
		productsPriced: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precifica_items_priced_total",
				Help: "Total items priced, by price table.",
			},
			[]string{"table"},
		),
		infeasibleQuotes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precifica_infeasible_quotes_total",
				Help: "Total items that could not be priced because the rates add up to 100% or more.",
			},
			[]string{"table"},
		),
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "precifica_mutations_total",
				Help: "Total catalog writes.",
			},
			[]string{"entity", "action"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrStoreError increments the store error counter.
func (m *Metrics) IncrStoreError(operation string) {
	m.storeErrors.WithLabelValues(operation).Inc()
}

// IncrReport counts an evaluated snapshot ("report", "dashboard", "simulation").
func (m *Metrics) IncrReport(kind string) {
	m.reportsBuilt.WithLabelValues(kind).Inc()
}

// RecordPriced adds priced and infeasible item counts for a price table
// ("fabrication", "resale", "simulation").
func (m *Metrics) RecordPriced(table string, priced, infeasible int) {
	m.productsPriced.WithLabelValues(table).Add(float64(priced))
	m.infeasibleQuotes.WithLabelValues(table).Add(float64(infeasible))
}

// IncrMutation counts a catalog write.
func (m *Metrics) IncrMutation(entity, action string) {
	m.mutations.WithLabelValues(entity, action).Inc()
}

// GetPricingSnapshot returns a snapshot of pricing metrics suitable for the
// GET /v1/metrics/pricing endpoint.
func (m *Metrics) GetPricingSnapshot() *domain.PricingMetrics {
	// Prometheus counters expose cumulative values.
	priced := sumCounter(m.productsPriced)
	infeasible := sumCounter(m.infeasibleQuotes)

	infeasibleRate := float64(0)
	if priced > 0 {
		infeasibleRate = infeasible / priced
	}

	return &domain.PricingMetrics{
		ReportsBuilt:     int64(sumCounter(m.reportsBuilt)),
		ProductsPriced:   int64(priced),
		InfeasibleQuotes: int64(infeasible),
		InfeasibleRate:   infeasibleRate,
		StoreErrors:      int64(sumCounter(m.storeErrors)),
		Mutations:        int64(sumCounter(m.mutations)),
		Period:           "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

// sumCounter adds up every label combination of a CounterVec.
func sumCounter(cv *prometheus.CounterVec) float64 {
	ch := make(chan prometheus.Metric, 16)
	go func() {
		cv.Collect(ch)
		close(ch)
	}()

	total := float64(0)
	for metric := range ch {
		m := &dto.Metric{}
		if err := metric.Write(m); err != nil {
			continue
		}
		if m.Counter != nil && m.Counter.Value != nil {
			total += *m.Counter.Value
		}
	}
	return total
}
