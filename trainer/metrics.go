package trainer

import "github.com/prometheus/client_golang/prometheus"

var (
	instancesAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ner",
			Subsystem: "trainer",
			Name:      "instances_added_total",
			Help:      "The total number of training instances added.",
		},
	)
	trainRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ner",
			Subsystem: "trainer",
			Name:      "train_runs_total",
			Help:      "The total number of training runs by outcome.",
		},
		[]string{"outcome"},
	)
	trainDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ner",
			Subsystem: "trainer",
			Name:      "train_duration_seconds",
			Help:      "Wall time of successful training runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)
	segmentSamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ner",
			Subsystem: "trainer",
			Name:      "segment_samples_total",
			Help:      "The total number of classifier samples by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(instancesAdded, trainRuns, trainDuration, segmentSamples)
}
