package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jovemprogramador/chatbot-go/internal/domain"
)

const namespace = "chatbot"

// Metrics groups the collectors exposed on /metrics. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry       *prometheus.Registry
	answers        *prometheus.CounterVec
	answerDuration *prometheus.HistogramVec
	scrapeFailures *prometheus.CounterVec
	modelErrors    *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Answers produced, by outcome.",
		}, []string{"outcome"}),
		answerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "answer_duration_seconds",
			Help:      "Time to produce an answer, by outcome.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"outcome"}),
		scrapeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_failures_total",
			Help:      "Site fetches that degraded to a fallback, by extractor.",
		}, []string{"extractor"}),
		modelErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_errors_total",
			Help:      "Failed generation calls, by provider.",
		}, []string{"provider"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.answers,
		m.answerDuration,
		m.scrapeFailures,
		m.modelErrors,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAnswer(outcome domain.Outcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(outcome.String()).Inc()
	m.answerDuration.WithLabelValues(outcome.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) ScrapeFailed(extractor string) {
	if m == nil {
		return
	}
	m.scrapeFailures.WithLabelValues(extractor).Inc()
}

func (m *Metrics) ModelFailed(provider string) {
	if m == nil {
		return
	}
	m.modelErrors.WithLabelValues(provider).Inc()
}
