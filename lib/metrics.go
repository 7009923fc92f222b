package wordbreak

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alphagov/wordbreak/handlers"
	"github.com/alphagov/wordbreak/segmenter"
)

var (
	wordlistReloadDurationMetric = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "wordbreak_wordlist_reload_duration_seconds",
			Help: "Summary of wordlist reload durations in seconds",
			Objectives: map[float64]float64{
				0.5:  0.01,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.005,
			},
		},
		[]string{"success"},
	)

	wordlistReloadErrorCountMetric = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wordbreak_wordlist_reload_error_total",
			Help: "Number of failed attempts to reload the wordlist",
		},
	)

	wordsCountMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wordbreak_words_loaded",
			Help: "Number of dictionary words currently loaded",
		},
		[]string{"source"},
	)
)

func registerMetrics(r prometheus.Registerer) {
	r.MustRegister(
		wordlistReloadDurationMetric,
		wordlistReloadErrorCountMetric,
		wordsCountMetric,
	)
	handlers.RegisterMetrics(r)
	segmenter.RegisterMetrics(r)
}
