package wordbreak

import (
	"bufio"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/segmenter"
)

// loadWordsFromFile loads the dictionary from a plain-text wordlist file of
// whitespace-delimited words, such as /usr/share/dict/words.
func loadWordsFromFile(filePath string, seg *segmenter.Segmenter, logger zerolog.Logger) error {
	file, err := os.Open(filePath) //nolint:gosec // filePath is from WORDBREAK_WORDLIST_FILE env var, controlled by user
	if err != nil {
		return fmt.Errorf("failed to open wordlist file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close wordlist file")
		}
	}()

	scanner := bufio.NewScanner(file)
	// ScanWords never yields an empty token at end of file, so there is no
	// end-of-stream special case here.
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		word := scanner.Text()
		addWord(seg, &WordEntry{Word: &word}, logger)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading wordlist file: %w", err)
	}

	return nil
}
