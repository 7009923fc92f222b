package wordbreak

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/segmenter"
)

// Service is a wrapper around a greedy word segmenter (segmenter.Segmenter)
// which retrieves its dictionary from a postgres wordlist or a flat file.
type Service struct {
	seg                   *segmenter.Segmenter
	lock                  sync.RWMutex
	opts                  Options
	ReloadChan            chan bool
	pool                  *pgxpool.Pool
	lastAttemptReloadTime time.Time
	Logger                zerolog.Logger
}

type Options struct {
	Logger                 zerolog.Logger
	WordlistFile           string
	WordlistReloadInterval time.Duration
}

// RegisterMetrics registers Prometheus metrics from the wordbreak module and
// the modules that it directly depends on. To use the default (global)
// registry, pass prometheus.DefaultRegisterer.
func RegisterMetrics(r prometheus.Registerer) {
	registerMetrics(r)
}

func NewService(o Options) (svc *Service, err error) {
	svc = &Service{
		seg:    segmenter.New(o.Logger),
		Logger: o.Logger,
		opts:   o,
	}

	if o.WordlistFile != "" {
		if err := loadWordsFromFile(o.WordlistFile, svc.seg, o.Logger); err != nil {
			return nil, err
		}
		wordsCountMetric.WithLabelValues("file").Set(float64(svc.seg.WordCount()))
		o.Logger.Info().Str("file", o.WordlistFile).Int("word_count", svc.seg.WordCount()).Msg("loaded wordlist from file")
		return svc, nil
	}

	svc.pool, err = pgxpool.New(context.Background(), os.Getenv("WORDLIST_DATABASE_URL"))
	if err != nil {
		return nil, err
	}
	o.Logger.Info().Msg("postgres connection pool created")

	svc.ReloadChan = make(chan bool, 1)
	svc.reloadWordlist(svc.pool)

	go func() {
		if err := svc.listenForWordlistUpdates(context.Background()); err != nil {
			svc.Logger.Error().Err(err).Msg("failed to listen for wordlist updates")
		}
	}()

	go svc.waitForReload()

	return svc, nil
}

// Segment delegates to the segmenter instance currently held by the service.
// Reloads swap in a freshly built segmenter, so in-flight calls always run
// against a completely loaded dictionary.
func (svc *Service) Segment(input string) ([]string, error) {
	svc.lock.RLock()
	seg := svc.seg
	svc.lock.RUnlock()

	return seg.Segment(input)
}

// WordCount returns the number of words in the currently loaded dictionary.
func (svc *Service) WordCount() int {
	svc.lock.RLock()
	seg := svc.seg
	svc.lock.RUnlock()

	return seg.WordCount()
}
