package platform

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LLMMetrics counts provider calls by outcome and records their latency.
type LLMMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewLLMMetrics(reg prometheus.Registerer) *LLMMetrics {
	m := &LLMMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medchat",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Total LLM provider calls",
		}, []string{"provider", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medchat",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Latency of LLM provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

func (m *LLMMetrics) Observe(provider string, failed bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "failed"
	}
	m.requestsTotal.WithLabelValues(provider, outcome).Inc()
	m.requestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
