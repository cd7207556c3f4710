// Package query parses raw, still percent-encoded search queries into
// ordered term groups, and raw HTTP query strings into parameter maps.
package query

import (
	"regexp"
	"strings"
)

// Mode selects how term groups combine across a query.
type Mode int

const (
	// ModeOR unions group matches. It is the default for queries without an
	// explicit operator.
	ModeOR Mode = iota
	// ModeAND intersects group matches.
	ModeAND
)

func (m Mode) String() string {
	if m == ModeAND {
		return "AND"
	}
	return "OR"
}

// The raw query keeps its percent-encoding: %20 is the word separator, and
// the uppercase literals AND / OR separate groups, optionally surrounded by
// encoded spaces.
var (
	andSplit  = regexp.MustCompile(`(%20)*AND(%20)*`)
	orSplit   = regexp.MustCompile(`(%20)*OR(%20)*`)
	wordSplit = regexp.MustCompile(`(%20)+`)
)

// Query is an ordered sequence of term groups plus the mode combining them.
// Terms inside one group always AND together; Mode only governs how groups
// combine with each other.
type Query struct {
	Groups [][]string
	Mode   Mode
	Raw    string
}

// Parse splits a raw query string into term groups. A query containing the
// literal AND selects ModeAND and splits on it; otherwise the query splits
// on OR under ModeOR, so an operator-free query yields exactly one group.
// Within a group, words split on runs of encoded spaces, are trimmed, and
// empty pieces are dropped. A segment holding no words at all still yields
// an (empty) group; the retrieval engine treats it as matching nothing.
func Parse(raw string) *Query {
	q := &Query{Mode: ModeOR, Raw: raw}

	var segments []string
	if strings.Contains(raw, "AND") {
		segments = splitOperator(andSplit, raw)
		q.Mode = ModeAND
	} else {
		segments = splitOperator(orSplit, raw)
	}

	for _, segment := range segments {
		words := make([]string, 0)
		for _, word := range wordSplit.Split(segment, -1) {
			word = strings.TrimSpace(word)
			if word != "" {
				words = append(words, word)
			}
		}
		q.Groups = append(q.Groups, words)
	}
	return q
}

// splitOperator splits raw on the operator pattern and drops trailing empty
// segments, so a dangling operator at the end of the query does not add a
// spurious empty group. Interior empty segments are preserved.
func splitOperator(re *regexp.Regexp, raw string) []string {
	parts := re.Split(raw, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
