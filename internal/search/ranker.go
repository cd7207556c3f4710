package search

import (
	"sort"

	"websearch/internal/corpus"
	"websearch/internal/index"
	"websearch/internal/query"
)

// Rank orders the matched documents descending by relevance to the parsed
// query. A document's score is its best group score: per-term scores sum
// within a group, and the maximum group sum wins, so the single
// best-matching clause counts rather than the total over all clauses.
// Grouping is used for scoring regardless of the query's AND/OR mode.
//
// The sort is stable and defines no tie-break beyond input order, so
// equal-score documents keep their relative positions. The input slice is
// not modified.
func Rank(docs []*corpus.Document, q *query.Query, ix *index.Index, strategy Strategy) []*corpus.Document {
	scores := make(map[int]float64, len(docs))
	for _, doc := range docs {
		scores[doc.ID] = documentScore(doc, q, ix, strategy)
	}

	ranked := make([]*corpus.Document, len(docs))
	copy(ranked, docs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})
	return ranked
}

func documentScore(doc *corpus.Document, q *query.Query, ix *index.Index, strategy Strategy) float64 {
	maxGroupScore := 0.0
	for _, group := range q.Groups {
		groupScore := 0.0
		for _, term := range group {
			groupScore += strategy.Score(term, doc, ix)
		}
		if groupScore > maxGroupScore {
			maxGroupScore = groupScore
		}
	}
	return maxGroupScore
}
