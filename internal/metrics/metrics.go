// Package metrics exposes rate limiter decisions as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/serroba/todo-ratelimit/internal/ratelimit"
)

// Result label values.
const (
	ResultAdmitted = "admitted"
	ResultDenied   = "denied"
	ResultError    = "error"
)

// Collector holds the Prometheus metrics for limiter decisions.
type Collector struct {
	registry  *prometheus.Registry
	decisions *prometheus.CounterVec
	duration  prometheus.Histogram
}

// NewCollector registers the limiter metrics on a fresh registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_requests_total",
				Help: "Total number of rate limit decisions by result",
			},
			[]string{"result"},
		),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ratelimit_decision_duration_seconds",
			Help:    "Time taken to reach a rate limit decision, including store round trips",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
}

// Observe records one decision.
func (c *Collector) Observe(result string, took time.Duration) {
	c.decisions.WithLabelValues(result).Inc()
	c.duration.Observe(took.Seconds())
}

// Decisions returns the decision counter, for inspection in tests.
func (c *Collector) Decisions() *prometheus.CounterVec {
	return c.decisions
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Instrumented wraps a limiter and records every decision.
type Instrumented struct {
	limiter   ratelimit.Limiter
	collector *Collector
	now       func() time.Time
}

// NewInstrumented creates a new instrumented limiter.
func NewInstrumented(limiter ratelimit.Limiter, collector *Collector) *Instrumented {
	return &Instrumented{
		limiter:   limiter,
		collector: collector,
		now:       time.Now,
	}
}

func (i *Instrumented) Limit(ctx context.Context, identity string) (ratelimit.Verdict, error) {
	start := i.now()

	verdict, err := i.limiter.Limit(ctx, identity)

	took := i.now().Sub(start)

	switch {
	case err != nil:
		i.collector.Observe(ResultError, took)
	case verdict.Admitted:
		i.collector.Observe(ResultAdmitted, took)
	default:
		i.collector.Observe(ResultDenied, took)
	}

	return verdict, err
}

// Compile-time check.
var _ ratelimit.Limiter = (*Instrumented)(nil)
