// Package metrics exposes Prometheus collectors for the HTTP layer and the
// assessment and lead flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "advisory"

// Metrics owns a private registry so tests can create as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	assessments     *prometheus.CounterVec
	ignoredAnswers  *prometheus.CounterVec
	leadsCaptured   *prometheus.CounterVec
	notificationErr prometheus.Counter
}

// New creates and registers all collectors, including the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_evaluated_total",
			Help:      "Assessments evaluated by kind and outcome.",
		}, []string{"kind", "outcome"}),
		ignoredAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_answers_ignored_total",
			Help:      "Answers dropped because they were outside the questionnaire.",
		}, []string{"kind"}),
		leadsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_captured_total",
			Help:      "Stored leads by assessment kind (none when no quiz was attached).",
		}, []string{"assessment"}),
		notificationErr: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Lead emails that could not be delivered.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.assessments,
		m.ignoredAnswers,
		m.leadsCaptured,
		m.notificationErr,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// AssessmentEvaluated counts one evaluation. outcome is the tier, recommendation
// or "estimate" depending on the assessment.
func (m *Metrics) AssessmentEvaluated(kind, outcome string, ignored int) {
	m.assessments.WithLabelValues(kind, outcome).Inc()
	if ignored > 0 {
		m.ignoredAnswers.WithLabelValues(kind).Add(float64(ignored))
	}
}

// LeadCaptured counts one stored lead.
func (m *Metrics) LeadCaptured(assessmentKind string) {
	if assessmentKind == "" {
		assessmentKind = "none"
	}
	m.leadsCaptured.WithLabelValues(assessmentKind).Inc()
}

// NotificationFailed counts one failed lead email delivery.
func (m *Metrics) NotificationFailed() {
	m.notificationErr.Inc()
}
