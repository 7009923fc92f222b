package wordbreak

import "strings"

// WordEntry is one row of the wordlist table. Word is a pointer because the
// column is nullable in legacy wordlist dumps.
type WordEntry struct {
	Word *string
}

// value returns the trimmed word and whether the entry holds one at all.
func (e *WordEntry) value() (string, bool) {
	if e.Word == nil {
		return "", false
	}

	word := strings.TrimSpace(*e.Word)
	if word == "" {
		return "", false
	}
	return word, true
}
