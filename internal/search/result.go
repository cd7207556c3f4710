package search

import "websearch/internal/corpus"

// Result is the wire form of one ranked document.
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ToResults projects ranked documents onto their wire form, preserving
// order.
func ToResults(docs []*corpus.Document) []Result {
	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		results = append(results, Result{URL: doc.URL(), Title: doc.Title()})
	}
	return results
}
