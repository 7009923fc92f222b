package segmenter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alphagov/wordbreak/trie"
)

type BreakExample struct {
	words    []string
	input    string
	expected []string
	err      error
}

// Data driven testing. Each BreakExample consists of a dictionary, an input
// string, and either the expected segment sequence or the expected error.
var breakExamples = []BreakExample{
	{ // Whole input is one word
		[]string{"cat"},
		"cat",
		[]string{"cat"},
		nil,
	},
	{ // Longest-match greediness: never a shorter alternative
		[]string{"a", "ab", "abc"},
		"abc",
		[]string{"abc"},
		nil,
	},
	{ // Single-step backtrack: "abd" overshoots, revert to "ab"
		[]string{"ab", "abc", "d"},
		"abd",
		[]string{"ab", "d"},
		nil,
	},
	{ // Backtrack where the remainder also fails
		[]string{"ab", "abc"},
		"abd",
		nil,
		ErrUnmatchable,
	},
	{ // Hard failure when nothing matches at all
		[]string{"cat"},
		"dog",
		nil,
		ErrUnmatchable,
	},
	{ // Multi-word input: no character is skipped between commits
		[]string{"cat", "dog"},
		"catdog",
		[]string{"cat", "dog"},
		nil,
	},
	{ // Three words
		[]string{"the", "cat", "sat"},
		"thecatsat",
		[]string{"the", "cat", "sat"},
		nil,
	},
	{ // Repeated backtracking: greedy "aaa" then the leftover "a"
		[]string{"a", "aa", "aaa"},
		"aaaa",
		[]string{"aaa", "a"},
		nil,
	},
	{ // Greedy match at end of input commits without extension
		[]string{"car", "cart"},
		"cart",
		[]string{"cart"},
		nil,
	},
	{ // Original casing is preserved in the output
		[]string{"foo", "bar"},
		"FooBAR",
		[]string{"Foo", "BAR"},
		nil,
	},
	{ // Empty input segments to nothing
		[]string{"cat"},
		"",
		nil,
		nil,
	},
	{ // Empty dictionary cannot segment anything
		[]string{},
		"cat",
		nil,
		ErrUnmatchable,
	},
	{ // Greedy commitment can doom the remainder: "b" alone is not a word
		[]string{"ab", "a", "bc"},
		"abc",
		nil,
		ErrUnmatchable,
	},
}

func TestBreakExamples(t *testing.T) {
	for i, ex := range breakExamples {
		testBreakExample(t, i, ex)
	}
}

func testBreakExample(t *testing.T, i int, ex BreakExample) {
	dict := buildDict(t, ex.words)
	segments, err := Break(ex.input, dict)
	t.Logf("Break(%q) -> segments:%v, err:%v", ex.input, segments, err)

	if !errors.Is(err, ex.err) {
		t.Errorf("Example %d: Break(%q) err was %v (expected %v)", i, ex.input, err, ex.err)
	}
	if ex.err != nil && segments != nil {
		t.Errorf("Example %d: Break(%q) returned a partial result %v alongside an error", i, ex.input, segments)
	}
	if len(segments) != len(ex.expected) {
		t.Errorf("Example %d: Break(%q) was %v (expected %v)", i, ex.input, segments, ex.expected)
		return
	}
	for j := range ex.expected {
		if segments[j] != ex.expected[j] {
			t.Errorf("Example %d: Break(%q) differed at segment %d (expected %q, got %q)",
				i, ex.input, j, ex.expected[j], segments[j])
		}
	}
}

// The round following a commit starts immediately after the committed match.
// A rendition that skips a character after each commit (as the behaviour this
// was rebuilt from did) drops one input character per word and fails here.
func TestBreakConsumesEveryCharacter(t *testing.T) {
	dict := buildDict(t, []string{"in", "no", "time", "at", "all", "a"})

	inputs := []string{"innotime", "atall", "innotimeatall"}
	for _, input := range inputs {
		segments, err := Break(input, dict)
		if err != nil {
			t.Errorf("Break(%q) returned error %v", input, err)
			continue
		}
		if joined := strings.Join(segments, ""); joined != input {
			t.Errorf("Break(%q) lost characters: segments %v rejoin to %q", input, segments, joined)
		}
	}
}

// Inserting the empty string marks the trie root as a word. Break must never
// commit (or revert to) a zero-length segment for it: a round that did would
// leave roundBegin unmoved and loop forever.
func TestBreakIgnoresEmptyDictionaryWord(t *testing.T) {
	dict := buildDict(t, []string{"", "b"})

	var (
		segments []string
		err      error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		segments, err = Break("a", dict)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Break did not terminate with the empty string in the dictionary")
	}

	if !errors.Is(err, ErrUnmatchable) {
		t.Errorf("Break(\"a\") err was %v (expected ErrUnmatchable)", err)
	}
	if segments != nil {
		t.Errorf("Break(\"a\") returned segments %v alongside an error", segments)
	}

	segments, err = Break("b", dict)
	if err != nil {
		t.Fatalf("Break(\"b\") returned error %v", err)
	}
	if len(segments) != 1 || segments[0] != "b" {
		t.Errorf("Break(\"b\") was %v (expected [b])", segments)
	}
}

func TestBreakCaseInsensitiveMatching(t *testing.T) {
	dict := buildDict(t, []string{"Hello", "WORLD"})

	segments, err := Break("helloworld", dict)
	if err != nil {
		t.Fatalf("Break returned error %v", err)
	}
	if len(segments) != 2 || segments[0] != "hello" || segments[1] != "world" {
		t.Errorf("Break(\"helloworld\") was %v (expected [hello world])", segments)
	}
}

func TestSegmenter(t *testing.T) {
	seg := New(zerolog.Nop())
	for _, w := range []string{"book", "case", "bookcase"} {
		seg.Add(w)
	}

	if seg.WordCount() != 3 {
		t.Errorf("WordCount was %d (expected 3)", seg.WordCount())
	}

	segments, err := seg.Segment("bookcasebook")
	if err != nil {
		t.Fatalf("Segment returned error %v", err)
	}
	if len(segments) != 2 || segments[0] != "bookcase" || segments[1] != "book" {
		t.Errorf("Segment(\"bookcasebook\") was %v (expected [bookcase book])", segments)
	}

	_, err = seg.Segment("bookends")
	if !errors.Is(err, ErrUnmatchable) {
		t.Errorf("Segment(\"bookends\") err was %v (expected ErrUnmatchable)", err)
	}
}

func BenchmarkBreak(b *testing.B) {
	dict := trie.NewTrie()
	for _, w := range []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"quickness", "brownie", "foxglove", "jump", "overt", "laziness",
	} {
		dict.Insert(w)
	}
	input := strings.Repeat("thequickbrownfoxjumpsoverthelazydog", 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Break(input, dict); err != nil {
			b.Fatal(err)
		}
	}
}

func buildDict(t *testing.T, words []string) *trie.Trie {
	dict := trie.NewTrie()
	for _, w := range words {
		dict.Insert(w)
		t.Logf("dict.Insert(%q)", w)
	}
	return dict
}
