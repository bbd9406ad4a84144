package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels successful evaluations.
	OutcomeSuccess = "success"
	// OutcomeError labels failed evaluations (engine or dependency issues).
	OutcomeError = "error"
	// OutcomeStale labels evaluations discarded because a newer submission
	// for the same asset completed first.
	OutcomeStale = "stale"
)

var (
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rapid_insight",
			Name:      "evaluations_total",
			Help:      "Total number of evaluations handled, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	evaluationDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rapid_insight",
			Name:      "evaluation_seconds",
			Help:      "End-to-end evaluation latency in seconds, engine round trip included.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	compositionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rapid_insight",
			Name:      "composition_seconds",
			Help:      "Narrative report composition latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)
)

// Register attaches rapid-insight collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		evaluationsTotal,
		evaluationDurationSeconds,
		compositionDurationSeconds,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveEvaluation records an evaluation duration and outcome label.
func ObserveEvaluation(duration time.Duration, outcome string) {
	label := outcome
	switch label {
	case OutcomeError, OutcomeStale:
	default:
		label = OutcomeSuccess
	}
	evaluationsTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	evaluationDurationSeconds.Observe(duration.Seconds())
}

// ObserveComposition records a narrative composition duration.
func ObserveComposition(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	compositionDurationSeconds.Observe(duration.Seconds())
}
