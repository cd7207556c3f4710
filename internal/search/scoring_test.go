package search

import (
	"errors"
	"math"
	"strings"
	"testing"

	"websearch/internal/corpus"
	"websearch/internal/index"
	apperrors "websearch/pkg/errors"
)

func TestSelectStrategy(t *testing.T) {
	if _, err := SelectStrategy(AlgorithmSimple); err != nil {
		t.Errorf("SelectStrategy(SIMPLE) failed: %v", err)
	}
	if _, err := SelectStrategy(AlgorithmTFIDF); err != nil {
		t.Errorf("SelectStrategy(TFIDF) failed: %v", err)
	}

	for _, key := range []string{"", "simple", "BM25"} {
		_, err := SelectStrategy(key)
		if err == nil {
			t.Fatalf("SelectStrategy(%q) returned nil error", key)
		}
		if !errors.Is(err, apperrors.ErrUnknownAlgorithm) {
			t.Errorf("SelectStrategy(%q) error = %v, want ErrUnknownAlgorithm", key, err)
		}
	}
}

func TestSimpleFrequencyScore(t *testing.T) {
	ix := fixtureIndex(t)
	doc := &corpus.Document{
		ID:    99,
		Lines: []string{"*PAGE:http://e.com", "title5", "word1", "word1", "word2"},
	}

	if got := (SimpleFrequency{}).Score("word1", doc, ix); got != 2 {
		t.Errorf("Score(word1) = %v, want 2", got)
	}
	if got := (SimpleFrequency{}).Score("word100", doc, ix); got != 0 {
		t.Errorf("Score(word100) = %v, want 0", got)
	}
}

func TestTFIDFScore(t *testing.T) {
	// Two documents, "rare" only in the first, which has four body words.
	const raw = `*PAGE:http://a.com
title1
rare
word
word
word
*PAGE:http://b.com
title2
word
`
	docs, err := corpus.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	ix := index.Build(docs)

	var target *corpus.Document
	for _, doc := range docs {
		if doc.URL() == "http://a.com" {
			target = doc
		}
	}

	// tf = 1/4, idf = ln(2/1)
	want := 0.25 * math.Log(2)
	if got := (TFIDF{}).Score("rare", target, ix); math.Abs(got-want) > 1e-12 {
		t.Errorf("Score(rare) = %v, want %v", got, want)
	}
}

func TestTFIDFUnindexedTermScoresZero(t *testing.T) {
	ix := fixtureIndex(t)
	doc := &corpus.Document{
		ID:    99,
		Lines: []string{"*PAGE:http://e.com", "title5", "word100"},
	}
	// word100 is in this document's body but in no indexed document, so
	// idf pins the score to 0.
	if got := (TFIDF{}).Score("word100", doc, ix); got != 0 {
		t.Errorf("Score(word100) = %v, want 0", got)
	}
}

func TestTFIDFZeroBodyWordsScoresZero(t *testing.T) {
	ix := fixtureIndex(t)
	doc := &corpus.Document{
		ID:    99,
		Lines: []string{"*PAGE:http://e.com", "title5"},
	}
	// Defined policy: a document with no body words scores 0 instead of
	// dividing by zero.
	if got := (TFIDF{}).Score("word1", doc, ix); got != 0 {
		t.Errorf("Score(word1) = %v, want 0", got)
	}
}
