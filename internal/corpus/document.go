// Package corpus loads the line-oriented corpus file and models the
// documents it contains.
package corpus

import "strings"

// PageMarker prefixes the first line of every document in the corpus file.
// The remainder of that line, after the marker, is the document URL.
const PageMarker = "*PAGE:"

// titleMarker matches the metadata convention for title lines: any body line
// starting with this prefix is treated as metadata by the word statistics.
const titleMarker = "title"

// Document is one indexed unit of the corpus: the raw lines of a single
// page, with the URL on line 0 and the title on line 1. Documents are
// immutable after construction and identified by ID alone; two documents
// with the same ID are the same document regardless of content.
//
// Callers constructing a Document must supply at least two lines, or the
// URL and Title accessors will panic.
type Document struct {
	ID    int
	Lines []string
}

// URL returns the document URL: line 0 with the page marker stripped.
func (d *Document) URL() string {
	return d.Lines[0][len(PageMarker):]
}

// Title returns line 1 verbatim.
func (d *Document) Title() string {
	return d.Lines[1]
}

// isBodyLine reports whether a raw line counts as document content. Empty
// lines and the page/title metadata lines do not.
func isBodyLine(line string) bool {
	return line != "" &&
		!strings.HasPrefix(line, PageMarker) &&
		!strings.HasPrefix(line, titleMarker)
}

// WordFrequency counts the body lines equal to term, ignoring case.
// Metadata lines never count, and an empty term has frequency 0.
func (d *Document) WordFrequency(term string) int {
	if term == "" {
		return 0
	}
	frequency := 0
	for _, line := range d.Lines {
		if isBodyLine(line) && strings.EqualFold(line, term) {
			frequency++
		}
	}
	return frequency
}

// TotalWords counts the document's body lines.
func (d *Document) TotalWords() int {
	total := 0
	for _, line := range d.Lines {
		if isBodyLine(line) {
			total++
		}
	}
	return total
}

// ContainsTerm reports whether term appears verbatim on any raw line,
// metadata lines included. The comparison is case-sensitive, unlike
// WordFrequency, and a document with no content beyond url and title never
// matches. This is a coarse relevance filter, not a frequency count.
func (d *Document) ContainsTerm(term string) bool {
	if term == "" || len(d.Lines) <= 2 {
		return false
	}
	for _, line := range d.Lines {
		if line == term {
			return true
		}
	}
	return false
}
