package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exporter publishes completed search metrics as Prometheus series.
type Exporter struct {
	builds    prometheus.Counter
	nodes     prometheus.Counter
	leaves    *prometheus.CounterVec
	truncated prometheus.Counter
	duration  prometheus.Histogram
	lastScore prometheus.Gauge
}

// NewExporter registers the planner series on reg.
func NewExporter(reg prometheus.Registerer) *Exporter {
	factory := promauto.With(reg)
	return &Exporter{
		builds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "builds_total",
			Help:      "Number of completed decision tree builds.",
		}),
		nodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "nodes_total",
			Help:      "Number of tree nodes created.",
		}),
		leaves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "leaves_total",
			Help:      "Number of scored leaves by the reason expansion stopped.",
		}, []string{"reason"}),
		truncated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "truncated_builds_total",
			Help:      "Number of builds cut short by the node ceiling.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "build_duration_seconds",
			Help:      "Wall time of decision tree builds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		lastScore: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "drone",
			Subsystem: "planner",
			Name:      "last_plan_score",
			Help:      "Score of the most recently extracted plan.",
		}),
	}
}

// Observe records one build and the score of the plan it produced.
func (e *Exporter) Observe(m SearchMetric, score float64) {
	e.builds.Inc()
	e.nodes.Add(float64(m.Nodes))
	e.leaves.WithLabelValues(DepthLimit.String()).Add(float64(m.Cutoffs))
	e.leaves.WithLabelValues(Terminal.String()).Add(float64(m.Terminals))
	e.leaves.WithLabelValues(DeadEnd.String()).Add(float64(m.DeadEnds))
	other := m.Leaves - m.Cutoffs - m.Terminals - m.DeadEnds
	if other > 0 {
		e.leaves.WithLabelValues(NodeLimit.String()).Add(float64(other))
	}
	if m.Truncated {
		e.truncated.Inc()
	}
	e.duration.Observe(m.Duration.Seconds())
	e.lastScore.Set(score)
}

// WriteTextfile dumps everything gathered by g in the node exporter textfile
// format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
