package wordbreak

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ExportWords queries the database and writes the wordlist to w, one word per
// line. The output is loadable with WORDBREAK_WORDLIST_FILE.
func ExportWords(w io.Writer, logger zerolog.Logger) error {
	databaseURL := os.Getenv("WORDLIST_DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("WORDLIST_DATABASE_URL environment variable is required")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logger.Info().Msg("querying words from wordlist")

	rows, err := pool.Query(context.Background(), loadWordsQuery)
	if err != nil {
		return fmt.Errorf("failed to query wordlist: %w", err)
	}
	defer rows.Close()

	wordCount := 0
	for rows.Next() {
		entry := &WordEntry{}
		if err := rows.Scan(&entry.Word); err != nil {
			return fmt.Errorf("failed to scan word: %w", err)
		}

		word, ok := entry.value()
		if !ok {
			logger.Warn().Interface("entry", entry).Msg("skipping wordlist entry with no word")
			continue
		}

		if _, err := fmt.Fprintln(w, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}

		wordCount++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating wordlist: %w", err)
	}

	logger.Info().Int("word_count", wordCount).Msg("exported wordlist")
	return nil
}
