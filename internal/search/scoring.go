package search

import (
	"math"

	"websearch/internal/corpus"
	"websearch/internal/index"
	apperrors "websearch/pkg/errors"
)

// Strategy scores one term's relevance to a document, given corpus-wide
// statistics from the index. Implementations must be safe for concurrent
// use; both strategies here are stateless.
type Strategy interface {
	Score(term string, doc *corpus.Document, ix *index.Index) float64
}

// Recognised algorithm keys. The strategy set is closed; anything else is a
// validation error.
const (
	AlgorithmSimple = "SIMPLE"
	AlgorithmTFIDF  = "TFIDF"
)

// SelectStrategy maps an algorithm key to its scoring strategy.
func SelectStrategy(algorithm string) (Strategy, error) {
	switch algorithm {
	case AlgorithmSimple:
		return SimpleFrequency{}, nil
	case AlgorithmTFIDF:
		return TFIDF{}, nil
	default:
		return nil, apperrors.Newf(apperrors.ErrUnknownAlgorithm, "%q", algorithm)
	}
}

// SimpleFrequency scores a term by its raw frequency in the document body,
// with no normalisation.
type SimpleFrequency struct{}

func (SimpleFrequency) Score(term string, doc *corpus.Document, _ *index.Index) float64 {
	return float64(doc.WordFrequency(term))
}

// TFIDF weights term frequency by how rare the term is across the corpus:
// tf is the body frequency normalised by document length, idf is ln(N/df).
// A term absent from the index scores 0 regardless of document content, and
// a document with no body words scores 0 rather than dividing by zero.
type TFIDF struct{}

func (TFIDF) Score(term string, doc *corpus.Document, ix *index.Index) float64 {
	df := ix.DocumentCountFor(term)
	if df == 0 {
		return 0
	}
	totalWords := doc.TotalWords()
	if totalWords == 0 {
		return 0
	}
	tf := float64(doc.WordFrequency(term)) / float64(totalWords)
	idf := math.Log(float64(ix.TotalDocuments()) / float64(df))
	return tf * idf
}
