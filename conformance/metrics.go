package conformance

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/nfalign/alignment"
)

const metricsNamespace = "nfalign"

// Metrics is an Observer exporting Prometheus metrics:
//
//	nfalign_traces_checked_total{result}      fitting verdicts (fit|unfit)
//	nfalign_alignments_total{result}          alignments (fit|unfit)
//	nfalign_alignment_cost                    histogram of alignment costs
//	nfalign_alignment_expanded_states         histogram of settled states
//	nfalign_alignment_duration_seconds        histogram of search time
type Metrics struct {
	traces     *prometheus.CounterVec
	alignments *prometheus.CounterVec
	cost       prometheus.Histogram
	expanded   prometheus.Histogram
	duration   prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		traces: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "traces_checked_total",
			Help:      "Traces checked for fitting, by verdict.",
		}, []string{"result"}),
		alignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "alignments_total",
			Help:      "Optimal alignments computed, by whether the trace fits.",
		}, []string{"result"}),
		cost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "alignment_cost",
			Help:      "Cost of optimal alignments.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "alignment_expanded_states",
			Help:      "Product states settled per alignment.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "alignment_duration_seconds",
			Help:      "Wall time of alignment searches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.traces, m.alignments, m.cost, m.expanded, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// ObserveFit counts one fitting verdict.
func (m *Metrics) ObserveFit(fits bool) {
	m.traces.WithLabelValues(result(fits)).Inc()
}

// ObserveAlignment records one alignment.
func (m *Metrics) ObserveAlignment(al *alignment.Alignment, elapsed time.Duration) {
	m.alignments.WithLabelValues(result(al.Fits())).Inc()
	m.cost.Observe(float64(al.Cost))
	m.expanded.Observe(float64(al.Expanded))
	m.duration.Observe(elapsed.Seconds())
}

func result(fits bool) string {
	if fits {
		return "fit"
	}

	return "unfit"
}
