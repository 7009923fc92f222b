package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SegmentHandlerRequestCountMetric = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordbreak_segment_handler_request_count",
			Help: "Number of requests handled by the segment handler",
		},
		[]string{
			"outcome",
		},
	)

	SegmentHandlerDurationSecondsMetric = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wordbreak_segment_handler_duration_seconds",
			Help: "Histogram of segment request durations",
			Buckets: prometheus.ExponentialBuckets(
				0.0001, 4, 8, // This buckets [0.0001 0.0004 ... 1.6384]
			),
		},
		[]string{
			"outcome",
		},
	)
)

// RegisterMetrics registers this package's Prometheus metrics. To use the
// default (global) registry, pass prometheus.DefaultRegisterer.
func RegisterMetrics(r prometheus.Registerer) {
	r.MustRegister(
		SegmentHandlerRequestCountMetric,
		SegmentHandlerDurationSecondsMetric,
	)
}
