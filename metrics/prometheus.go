// metrics/prometheus.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhiraj070/RuleMind/model"
)

type MetricsCollector struct {
	registry           *prometheus.Registry
	evaluations        *prometheus.CounterVec
	evaluationErrors   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	ruleTriggers       *prometheus.CounterVec
	ruleChanges        *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
}

func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulemind_evaluations_total",
			Help: "Completed evaluations by verdict",
		}, []string{"verdict"}),
		evaluationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulemind_evaluation_errors_total",
			Help: "Evaluations that returned no verdict, by error code",
		}, []string{"code"}),
		evaluationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rulemind_evaluation_duration_seconds",
			Help:    "Time taken to evaluate and record a transaction",
			Buckets: prometheus.DefBuckets,
		}),
		ruleTriggers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulemind_rule_triggers_total",
			Help: "Times each rule triggered",
		}, []string{"rule_id", "action"}),
		ruleChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulemind_rule_changes_total",
			Help: "Rule store mutations by kind",
		}, []string{"change"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rulemind_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// RecordEvaluation counts a completed evaluation and the rules it triggered.
func (m *MetricsCollector) RecordEvaluation(duration time.Duration, result model.EvaluationResult) {
	m.evaluations.WithLabelValues(string(result.Status)).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
	for _, t := range result.TriggeredRules {
		m.ruleTriggers.WithLabelValues(t.RuleID, string(t.Action)).Inc()
	}
}

func (m *MetricsCollector) RecordEvaluationError(duration time.Duration, code string) {
	m.evaluationErrors.WithLabelValues(code).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
}

func (m *MetricsCollector) RecordRuleChange(change string) {
	m.ruleChanges.WithLabelValues(change).Inc()
}

func (m *MetricsCollector) RecordRequest(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
