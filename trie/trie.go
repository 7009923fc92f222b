// Package trie implements a simple character trie which stores a set of words
// and can report, for any candidate string, whether it is a complete word
// and/or a strict prefix of at least one longer word.
package trie

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

// ErrNonAlphabetical is returned by CheckAlphabetic for strings containing
// characters outside the alphabet. The trie itself accepts any character;
// callers that only want alphabetic input must reject it before matching.
var ErrNonAlphabetical = errors.New("non-alphabetical character in input")

type trieChildren map[rune]*Trie

type Trie struct {
	Word     bool
	Children trieChildren
}

// NewTrie makes a new empty Trie
func NewTrie() *Trie {
	return &Trie{
		Children: make(trieChildren),
	}
}

// Insert adds a word to the Trie, folding every character to lower case so
// that a word is stored once regardless of the casing it arrives in.
// Inserting a word that is already present is a no-op. Example:
//
//	t := trie.NewTrie()
//	t.Insert("Apple")
//	t.Match("APPLE") // true, false
func (t *Trie) Insert(word string) {
	if len(word) == 0 {
		t.Word = true
		return
	}

	key, size := decodeLower(word)

	child, ok := t.Children[key]
	if !ok {
		// Trie node for this character doesn't already exist, so let's create it
		child = NewTrie()
		t.Children[key] = child
	}

	child.Insert(word[size:])
}

// Match walks the Trie along s, case-insensitively, consuming one character
// per edge.
//
// It returns two booleans: whether s is a stored word, and whether s is a
// strict prefix of at least one longer stored word (independent of the
// first value). If the walk falls off the Trie, both are false. For the
// empty string, the second value reports whether the Trie holds anything
// at all.
func (t *Trie) Match(s string) (word, prefix bool) {
	if len(s) == 0 {
		return t.Word, len(t.Children) > 0
	}

	key, size := decodeLower(s)

	child, ok := t.Children[key]
	if !ok {
		// No edge for this character: neither a word nor a viable prefix
		return false, false
	}

	return child.Match(s[size:])
}

// Empty reports whether no words have been inserted.
func (t *Trie) Empty() bool {
	return !t.Word && len(t.Children) == 0
}

// CheckAlphabetic returns ErrNonAlphabetical if s contains any non-letter
// character. Matching is agnostic to character class, so callers that want
// to reject non-alphabetic input do so with this before segmenting.
func CheckAlphabetic(s string) error {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return ErrNonAlphabetical
		}
	}
	return nil
}

// decodeLower decodes the first character of s as a lower-cased edge key.
func decodeLower(s string) (key rune, size int) {
	c, size := utf8.DecodeRuneInString(s)
	return unicode.ToLower(c), size
}
