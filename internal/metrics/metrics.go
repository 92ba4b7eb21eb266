// Package metrics exposes authentication counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/studyhub/auth-service/internal/auth"
)

// Metrics owns a private registry so tests and multiple app instances
// never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	sessions *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Authentication attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sessions_established_total",
			Help: "Sessions established by method.",
		}, []string{"method"}),
	}

	m.registry.MustRegister(
		m.attempts,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAttempt counts one attempt. method is "password", "signup" or a
// provider name.
func (m *Metrics) ObserveAttempt(method string, outcome auth.Outcome) {
	m.attempts.WithLabelValues(method, outcome.String()).Inc()
}

func (m *Metrics) ObserveSession(method string) {
	m.sessions.WithLabelValues(method).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
