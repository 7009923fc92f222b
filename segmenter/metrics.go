package segmenter

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	segmentationCountMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordbreak_segmenter_segmentation_total",
			Help: "Number of inputs successfully segmented",
		},
	)

	unmatchableInputCountMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordbreak_segmenter_unmatchable_input_total",
			Help: "Number of inputs for which no greedy segmentation exists",
		},
	)

	segmentsPerInputMetric = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "wordbreak_segmenter_segments_per_input",
			Help: "Histogram of the number of words committed per segmented input",
			Buckets: prometheus.ExponentialBuckets(
				1, 2, 8, // This buckets [1 2 4 ... 128]
			),
		},
	)
)

// RegisterMetrics registers this package's Prometheus metrics. To use the
// default (global) registry, pass prometheus.DefaultRegisterer.
func RegisterMetrics(r prometheus.Registerer) {
	r.MustRegister(
		segmentationCountMetric,
		unmatchableInputCountMetric,
		segmentsPerInputMetric,
	)
}
