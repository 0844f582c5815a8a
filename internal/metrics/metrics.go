package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the service's prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	LLMRequests    *prometheus.CounterVec
	LLMLatency     *prometheus.HistogramVec
	TriageResults  *prometheus.CounterVec
	FAQAnswers     *prometheus.CounterVec
	QueryLogWrites *prometheus.CounterVec
	Errors         *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Completion calls by use case and outcome.",
		}, []string{"use_case", "status"}),
		LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Completion call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"use_case"}),
		TriageResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "triage_results_total",
			Help:      "Successful intake analyses by urgency.",
		}, []string{"urgency"}),
		FAQAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "faq_answers_total",
			Help:      "FAQ answers by outcome (matched, unmatched, fallback, raw).",
		}, []string{"outcome"}),
		QueryLogWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_log_entries_total",
			Help:      "Query log appends by type.",
		}, []string{"type"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors by component.",
		}, []string{"component"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.LLMRequests,
		m.LLMLatency,
		m.TriageResults,
		m.FAQAnswers,
		m.QueryLogWrites,
		m.Errors,
	)

	return m
}
