package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "maintenance"

// Recorder is what the service layer reports diagnosis activity to.
type Recorder interface {
	ObserveDiagnosis(status string, matched bool, ruleFailures int, took time.Duration)
	HistoryCleared(n int64)
}

// PromRecorder keeps the diagnosis collectors registered on one registry.
type PromRecorder struct {
	diagnoses    *prometheus.CounterVec
	fallbacks    prometheus.Counter
	ruleFailures prometheus.Counter
	cleared      prometheus.Counter
	latency      prometheus.Histogram
}

// NewPromRecorder creates the collectors and registers them on reg.
func NewPromRecorder(reg prometheus.Registerer) *PromRecorder {
	p := &PromRecorder{
		diagnoses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnoses_total",
			Help:      "Diagnoses produced, by reported status.",
		}, []string{"status"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_diagnoses_total",
			Help:      "Diagnoses where no rule matched and the default was returned.",
		}),
		ruleFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_evaluation_failures_total",
			Help:      "Rule conditions that errored during evaluation and were skipped.",
		}),
		cleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_cleared_total",
			Help:      "History records removed by clear operations.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diagnosis_duration_seconds",
			Help:      "Time spent walking the rule set for one reading.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
	}
	reg.MustRegister(p.diagnoses, p.fallbacks, p.ruleFailures, p.cleared, p.latency)
	return p
}

func (p *PromRecorder) ObserveDiagnosis(status string, matched bool, ruleFailures int, took time.Duration) {
	p.diagnoses.WithLabelValues(status).Inc()
	if !matched {
		p.fallbacks.Inc()
	}
	if ruleFailures > 0 {
		p.ruleFailures.Add(float64(ruleFailures))
	}
	p.latency.Observe(took.Seconds())
}

func (p *PromRecorder) HistoryCleared(n int64) {
	if n > 0 {
		p.cleared.Add(float64(n))
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) ObserveDiagnosis(string, bool, int, time.Duration) {}
func (Nop) HistoryCleared(int64)                              {}
