package search

import (
	"errors"
	"strings"
	"testing"

	"websearch/internal/corpus"
	"websearch/internal/index"
	"websearch/internal/query"
	apperrors "websearch/pkg/errors"
)

// fixtureIndex builds a four-document index:
//
//	a: word1 word2
//	b: word1 word3
//	c: word2 word3
//	d: word4
func fixtureIndex(t testing.TB) *index.Index {
	t.Helper()
	const raw = `*PAGE:http://a.com
title1
word1
word2
*PAGE:http://b.com
title2
word1
word3
*PAGE:http://c.com
title3
word2
word3
*PAGE:http://d.com
title4
word4
`
	docs, err := corpus.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return index.Build(docs)
}

func urls(docs []*corpus.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.URL())
	}
	return out
}

func assertURLSet(t *testing.T, docs []*corpus.Document, want ...string) {
	t.Helper()
	got := make(map[string]bool, len(docs))
	for _, doc := range docs {
		got[doc.URL()] = true
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", urls(docs), want)
	}
	for _, url := range want {
		if !got[url] {
			t.Fatalf("got %v, want %v", urls(docs), want)
		}
	}
}

func TestSearchANDIntersectsGroups(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{"word1"}, {"word2"}},
		Mode:   query.ModeAND,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertURLSet(t, docs, "http://a.com")
}

func TestSearchORUnionsGroups(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{"word1"}, {"word3"}},
		Mode:   query.ModeOR,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertURLSet(t, docs, "http://a.com", "http://b.com", "http://c.com")
}

func TestSearchMultiTermGroupIntersectsWithinGroup(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	// Terms inside one group AND together even under ModeOR.
	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{"word1", "word2"}},
		Mode:   query.ModeOR,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertURLSet(t, docs, "http://a.com")
}

func TestSearchEmptyGroupMatchesNothing(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	// An empty group contributes nothing to a union.
	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{}, {"word1"}},
		Mode:   query.ModeOR,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertURLSet(t, docs, "http://a.com", "http://b.com")

	// Under AND it empties the whole result.
	docs, err = engine.Search(&query.Query{
		Groups: [][]string{{}, {"word1"}},
		Mode:   query.ModeAND,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %v, want no matches", urls(docs))
	}
}

func TestSearchUnknownTerm(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{"word100"}},
		Mode:   query.ModeOR,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %v, want no matches", urls(docs))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	for _, q := range []*query.Query{nil, {Groups: nil}, {Groups: [][]string{}}} {
		_, err := engine.Search(q)
		if err == nil {
			t.Fatalf("Search(%v) returned nil error", q)
		}
		if !errors.Is(err, apperrors.ErrInvalidQuery) {
			t.Errorf("Search(%v) error = %v, want ErrInvalidQuery", q, err)
		}
	}
}

func TestSearchResultsSortedByID(t *testing.T) {
	engine := NewEngine(fixtureIndex(t))

	docs, err := engine.Search(&query.Query{
		Groups: [][]string{{"word1"}, {"word2"}, {"word3"}},
		Mode:   query.ModeOR,
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for i := 1; i < len(docs); i++ {
		if docs[i-1].ID >= docs[i].ID {
			t.Fatalf("results not sorted by ID: %v", urls(docs))
		}
	}
}
