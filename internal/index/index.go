// Package index provides the build-once inverted index over corpus
// documents.
package index

import "websearch/internal/corpus"

// Index maps each raw corpus line, taken verbatim as a term, to the set of
// documents containing it. Metadata lines (page marker, title) are indexed
// like any other line; only the word statistics on Document filter them.
//
// An Index is populated once by Build and read-only afterwards, so any
// number of goroutines may query it concurrently without locking.
type Index struct {
	postings map[string]map[int]*corpus.Document
	docCount int
}

// Build constructs the index from loaded documents. Document sets
// deduplicate by ID.
func Build(docs []*corpus.Document) *Index {
	ix := &Index{postings: make(map[string]map[int]*corpus.Document)}
	for _, doc := range docs {
		for _, line := range doc.Lines {
			set, ok := ix.postings[line]
			if !ok {
				set = make(map[int]*corpus.Document)
				ix.postings[line] = set
			}
			set[doc.ID] = doc
		}
		ix.docCount++
	}
	return ix
}

// DocumentsFor returns the set of documents whose raw lines include term
// exactly, keyed by document ID. There is no case normalisation. The result
// is nil for absent terms and must not be mutated by callers.
func (ix *Index) DocumentsFor(term string) map[int]*corpus.Document {
	return ix.postings[term]
}

// DocumentCountFor returns the number of documents containing term, or 0.
func (ix *Index) DocumentCountFor(term string) int {
	return len(ix.postings[term])
}

// TotalDocuments returns the number of documents the index was built from.
func (ix *Index) TotalDocuments() int {
	return ix.docCount
}

// TermCount returns the number of distinct terms in the index.
func (ix *Index) TermCount() int {
	return len(ix.postings)
}
