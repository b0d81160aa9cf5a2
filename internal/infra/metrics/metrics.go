package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "checkout"

// Registry owns every collector the service exposes on /metrics.
type Registry struct {
	reg *prometheus.Registry
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{reg: reg}
}

func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

type CheckoutMetrics struct {
	attempts *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewCheckoutMetrics(r *Registry) *CheckoutMetrics {
	factory := promauto.With(r.Registerer())
	return &CheckoutMetrics{
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_duration_seconds",
			Help:      "Checkout latency by outcome.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"outcome"}),
	}
}

func (m *CheckoutMetrics) ObserveCheckout(outcome string, elapsed time.Duration) {
	m.attempts.WithLabelValues(outcome).Inc()
	m.latency.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

type OutboxMetrics struct {
	published prometheus.Counter
	failed    prometheus.Counter
}

func NewOutboxMetrics(r *Registry) *OutboxMetrics {
	factory := promauto.With(r.Registerer())
	return &OutboxMetrics{
		published: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_published_total",
			Help:      "Outbox events published to Kafka.",
		}),
		failed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_publish_errors_total",
			Help:      "Outbox events released back after a failed publish.",
		}),
	}
}

func (m *OutboxMetrics) Published(n int) {
	m.published.Add(float64(n))
}

func (m *OutboxMetrics) Failed(n int) {
	m.failed.Add(float64(n))
}
