package search

import (
	"strings"
	"testing"

	"websearch/internal/corpus"
	"websearch/internal/index"
	"websearch/internal/query"
)

// rankFixture builds three documents with different word1 frequencies:
// a has one, b has three, c has two.
func rankFixture(t *testing.T) ([]*corpus.Document, *index.Index) {
	t.Helper()
	const raw = `*PAGE:http://a.com
title1
word1
word2
*PAGE:http://b.com
title2
word1
word1
word1
*PAGE:http://c.com
title3
word1
word1
`
	docs, err := corpus.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return docs, index.Build(docs)
}

func TestRankDescendingByScore(t *testing.T) {
	docs, ix := rankFixture(t)
	q := &query.Query{Groups: [][]string{{"word1"}}, Mode: query.ModeOR}

	ranked := Rank(docs, q, ix, SimpleFrequency{})

	want := []string{"http://b.com", "http://c.com", "http://a.com"}
	for i, url := range want {
		if got := ranked[i].URL(); got != url {
			t.Errorf("ranked[%d] = %q, want %q", i, got, url)
		}
	}
}

func TestRankIsStableForEqualScores(t *testing.T) {
	docs, ix := rankFixture(t)
	// No document contains word100, so every score is 0 and the input
	// order must survive.
	q := &query.Query{Groups: [][]string{{"word100"}}, Mode: query.ModeOR}

	ranked := Rank(docs, q, ix, SimpleFrequency{})
	for i := range docs {
		if ranked[i].ID != docs[i].ID {
			t.Fatalf("equal-score order changed at %d: got %d, want %d", i, ranked[i].ID, docs[i].ID)
		}
	}
}

func TestRankPreservesSortedInput(t *testing.T) {
	docs, ix := rankFixture(t)
	q := &query.Query{Groups: [][]string{{"word1"}}, Mode: query.ModeOR}

	once := Rank(docs, q, ix, SimpleFrequency{})
	twice := Rank(once, q, ix, SimpleFrequency{})
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("re-ranking a sorted list changed order at %d", i)
		}
	}
}

func TestRankUsesBestGroupNotSum(t *testing.T) {
	docs, ix := rankFixture(t)

	// Group sums: for b, group one scores 3 and group two scores 0; the
	// document score must be the max (3), not the sum, and grouping is
	// honoured regardless of the query mode.
	q := &query.Query{
		Groups: [][]string{{"word1"}, {"word2"}},
		Mode:   query.ModeOR,
	}

	var a, b *corpus.Document
	for _, doc := range docs {
		switch doc.URL() {
		case "http://a.com":
			a = doc
		case "http://b.com":
			b = doc
		}
	}

	if got := documentScore(b, q, ix, SimpleFrequency{}); got != 3 {
		t.Errorf("documentScore(b) = %v, want 3", got)
	}
	// a has word1 once and word2 once in separate groups: max is 1.
	if got := documentScore(a, q, ix, SimpleFrequency{}); got != 1 {
		t.Errorf("documentScore(a) = %v, want 1", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	docs, ix := rankFixture(t)
	original := make([]int, len(docs))
	for i, doc := range docs {
		original[i] = doc.ID
	}

	q := &query.Query{Groups: [][]string{{"word1"}}, Mode: query.ModeOR}
	Rank(docs, q, ix, SimpleFrequency{})

	for i, doc := range docs {
		if doc.ID != original[i] {
			t.Fatalf("input slice mutated at %d", i)
		}
	}
}
