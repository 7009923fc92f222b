package wordbreak

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgxlisten"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/segmenter"
	"github.com/alphagov/wordbreak/trie"
)

//go:embed sql/words.sql
var loadWordsQuery string

type PgxIface interface {
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

// addWord validates and inserts one wordlist entry. Entries that could never
// be matched (null, blank, non-alphabetic) are skipped with a warning rather
// than failing the whole load.
func addWord(seg *segmenter.Segmenter, entry *WordEntry, logger zerolog.Logger) {
	word, ok := entry.value()
	if !ok {
		logger.Warn().Interface("entry", entry).Msg("ignoring wordlist entry with no word")
		return
	}

	if err := trie.CheckAlphabetic(word); err != nil {
		logger.Warn().Str("word", word).Msg("ignoring non-alphabetic wordlist entry")
		return
	}

	seg.Add(word)
}

func loadWords(pool PgxIface, seg *segmenter.Segmenter, logger zerolog.Logger) error {
	rows, err := pool.Query(context.Background(), loadWordsQuery)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		entry := &WordEntry{}
		if err := rows.Scan(&entry.Word); err != nil {
			return err
		}
		addWord(seg, entry, logger)
	}

	if err := rows.Err(); err != nil {
		return err
	}
	return nil
}

func (svc *Service) listenForWordlistUpdates(ctx context.Context) error {
	listener := &pgxlisten.Listener{
		Connect: func(ctx context.Context) (*pgx.Conn, error) {
			c, err := svc.pool.Acquire(ctx)
			if err != nil {
				return nil, err
			}
			return c.Conn(), nil
		},
	}

	listener.Handle(
		"wordlist_changes",
		pgxlisten.HandlerFunc(
			func(ctx context.Context, notification *pgconn.Notification, conn *pgx.Conn) error {
				// This is a non-blocking send, if there is already a notification to reload we don't need to send another one
				select {
				case svc.ReloadChan <- true:
				default:
				}
				return nil
			},
		),
	)

	return listener.Listen(ctx)
}

func (svc *Service) PeriodicWordlistUpdates() {
	// Skip periodic updates if ReloadChan is nil (e.g., when using a flat file)
	if svc.ReloadChan == nil {
		return
	}

	tick := time.Tick(5 * time.Second)
	for range tick {
		if time.Since(svc.lastAttemptReloadTime) > svc.opts.WordlistReloadInterval {
			// This is a non-blocking send, if there is already a notification to reload we don't need to send another one
			select {
			case svc.ReloadChan <- true:
			default:
			}
		}
	}
}

func (svc *Service) waitForReload() {
	for range svc.ReloadChan {
		svc.reloadWordlist(svc.pool)
	}
}

// reloadWordlist builds a whole new dictionary from the wordlist table and
// swaps it in. The dictionary in use is never mutated, so segmentation calls
// racing a reload see either the old dictionary or the new one, both fully
// loaded.
func (svc *Service) reloadWordlist(pool PgxIface) {
	var success bool
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		labels := prometheus.Labels{"success": strconv.FormatBool(success)}
		wordlistReloadDurationMetric.With(labels).Observe(v)
	}))

	defer func() {
		success = true
		if r := recover(); r != nil {
			success = false
			svc.Logger.Err(fmt.Errorf("%v", r)).Msgf("recovered from panic in reloadWordlist")
			svc.Logger.Info().Msg("reload failed and the existing dictionary has not been modified")
		}
		timer.ObserveDuration()
	}()

	svc.lastAttemptReloadTime = time.Now()

	svc.Logger.Info().Msg("reloading wordlist from postgres")
	newseg := segmenter.New(svc.Logger)

	if err := loadWords(pool, newseg, svc.Logger); err != nil {
		wordlistReloadErrorCountMetric.Inc()
		svc.Logger.Warn().Err(err).Msg("error reloading wordlist")
		return
	}

	wordCount := newseg.WordCount()

	svc.lock.Lock()
	svc.seg = newseg
	svc.lock.Unlock()

	svc.Logger.Info().Int("word_count", wordCount).Msg("reloaded wordlist")
	wordsCountMetric.WithLabelValues("postgres").Set(float64(wordCount))
}
