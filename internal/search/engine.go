// Package search evaluates parsed boolean queries against the inverted
// index and ranks the matches by a pluggable scoring strategy.
package search

import (
	"log/slog"
	"sort"

	"websearch/internal/corpus"
	"websearch/internal/index"
	"websearch/internal/query"
	apperrors "websearch/pkg/errors"
	"websearch/pkg/logger"
)

// Engine performs boolean set retrieval over a built index.
type Engine struct {
	index  *index.Index
	logger *slog.Logger
}

func NewEngine(ix *index.Index) *Engine {
	return &Engine{
		index:  ix,
		logger: logger.WithComponent("search-engine"),
	}
}

// Search evaluates the parsed query and returns the matching documents,
// deduplicated and sorted by ID so downstream ranking sees a deterministic
// input order. A nil query or empty group sequence is a validation error,
// never a silent empty result.
func (e *Engine) Search(q *query.Query) ([]*corpus.Document, error) {
	if q == nil || len(q.Groups) == 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidQuery, "query must contain at least one term group")
	}

	var matched map[int]*corpus.Document
	switch q.Mode {
	case query.ModeAND:
		matched = e.matchGroup(q.Groups[0])
		for _, group := range q.Groups[1:] {
			if len(matched) == 0 {
				break
			}
			matched = intersect(matched, e.matchGroup(group))
		}
	default:
		matched = make(map[int]*corpus.Document)
		for _, group := range q.Groups {
			for id, doc := range e.matchGroup(group) {
				matched[id] = doc
			}
		}
	}

	docs := make([]*corpus.Document, 0, len(matched))
	for _, doc := range matched {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	e.logger.Debug("query evaluated",
		"mode", q.Mode.String(),
		"groups", len(q.Groups),
		"matches", len(docs),
	)
	return docs, nil
}

// matchGroup intersects the posting sets of every term in the group, left to
// right, short-circuiting once the running intersection is empty. An empty
// group matches nothing, not everything.
func (e *Engine) matchGroup(group []string) map[int]*corpus.Document {
	if len(group) == 0 {
		return map[int]*corpus.Document{}
	}
	matched := copySet(e.index.DocumentsFor(group[0]))
	for _, term := range group[1:] {
		if len(matched) == 0 {
			break
		}
		matched = intersect(matched, e.index.DocumentsFor(term))
	}
	return matched
}

// intersect returns a new set holding the documents present in both a and b.
func intersect(a, b map[int]*corpus.Document) map[int]*corpus.Document {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(map[int]*corpus.Document, len(a))
	for id, doc := range a {
		if _, ok := b[id]; ok {
			out[id] = doc
		}
	}
	return out
}

// copySet clones an index posting set so the engine never mutates the
// index's own maps.
func copySet(set map[int]*corpus.Document) map[int]*corpus.Document {
	out := make(map[int]*corpus.Document, len(set))
	for id, doc := range set {
		out[id] = doc
	}
	return out
}
