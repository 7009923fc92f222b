// Package segmenter implements greedy longest-match word segmentation, which
// splits an unbroken run of characters into consecutive dictionary words by
// probing a character trie.
package segmenter

import (
	"errors"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/trie"
)

// ErrUnmatchable is returned by Break when some position in the input starts
// no dictionary word, so no greedy segmentation of the input exists.
var ErrUnmatchable = errors.New("input cannot be segmented with this dictionary")

type Segmenter struct {
	mu        sync.RWMutex
	dict      *trie.Trie
	wordCount int
	logger    zerolog.Logger
}

// New makes a new Segmenter with an empty dictionary.
func New(logger zerolog.Logger) *Segmenter {
	return &Segmenter{dict: trie.NewTrie(), logger: logger}
}

// Add inserts a word into the dictionary.
func (s *Segmenter) Add(word string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dict.Insert(word)
	s.wordCount++
}

// WordCount returns the number of words added to the dictionary.
func (s *Segmenter) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wordCount
}

// Segment splits input into consecutive dictionary words. Loading must have
// finished before Segment is called; once it has, any number of concurrent
// callers may segment against the same dictionary.
func (s *Segmenter) Segment(input string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	segments, err := Break(input, s.dict)
	if err != nil {
		unmatchableInputCountMetric.Inc()
		s.logger.Debug().Str("input", input).Msg("input could not be segmented")
		return nil, err
	}

	segmentationCountMetric.Inc()
	segmentsPerInputMetric.Observe(float64(len(segments)))
	return segments, nil
}

// Break splits input into consecutive dictionary words, always committing the
// longest word reachable by extending the current candidate one character at
// a time. Matching against the dictionary is case-insensitive but the
// returned segments are substrings of input with their original casing.
// An empty input yields a nil result.
//
// Scanning works in rounds, one per output word. Within a round the candidate
// [roundBegin, roundCurr) grows one character at a time; the longest complete
// word seen so far is remembered so that when an extension falls off the
// dictionary, scanning can revert to it. A round that overruns with nothing
// remembered fails the whole input with ErrUnmatchable: no partial result is
// returned, and retrying cannot succeed since dictionary and input are fixed.
//
// Each probe costs O(candidate length) trie edges, and each round advances
// roundBegin strictly forward, so the whole walk is bounded by the input
// length times the longest matched word.
func Break(input string, dict *trie.Trie) ([]string, error) {
	var segments []string

	roundBegin, roundCurr := 0, 0

	// End of the longest word matched so far in the current round.
	// -1 means no match has been recorded yet.
	matchEnd := -1

	for roundBegin < len(input) {
		word, prefix := dict.Match(input[roundBegin:roundCurr])

		// A zero-length candidate is never committable, even when the
		// empty string has been inserted as a word: committing (or
		// reverting to) an empty segment would leave roundBegin where it
		// was and the scan would never advance.
		if roundCurr == roundBegin {
			word = false
		}

		switch {
		case word && (!prefix || roundCurr == len(input)):
			// Provably the longest possible match for this round: no
			// extension can succeed. Commit it and start the next round
			// immediately after it.
			segments = append(segments, input[roundBegin:roundCurr])
			roundBegin = roundCurr
			matchEnd = -1

		case word:
			// A word, but also a viable prefix of a longer one. Record it
			// and keep extending; we revert here if extension fails.
			matchEnd = roundCurr
			roundCurr = advance(input, roundCurr)

		case prefix:
			// Not yet a word but still viable; extend the candidate.
			roundCurr = advance(input, roundCurr)

		default:
			// Fell off the dictionary. Revert to the recorded match, or
			// fail the whole input if the round never matched a word.
			if matchEnd < 0 {
				return nil, ErrUnmatchable
			}
			segments = append(segments, input[roundBegin:matchEnd])
			roundBegin = matchEnd
			roundCurr = matchEnd
			matchEnd = -1
		}
	}

	return segments, nil
}

// advance moves a byte offset past the character starting at input[i].
func advance(input string, i int) int {
	_, size := utf8.DecodeRuneInString(input[i:])
	return i + size
}
