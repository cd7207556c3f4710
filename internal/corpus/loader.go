package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "websearch/pkg/errors"
)

// Load reads the corpus file at path and partitions it into documents.
// A missing or unreadable file is an error carrying ErrCorpusUnreadable;
// it is never silently turned into an empty corpus.
func Load(path string) ([]*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", apperrors.ErrCorpusUnreadable, path, err)
	}
	defer f.Close()

	docs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", apperrors.ErrCorpusUnreadable, path, err)
	}
	return docs, nil
}

// Parse scans raw corpus lines and materialises one document per page-marker
// boundary, spanning from the marker line to the previously found boundary.
// The scan runs back to front, so emission order is the reverse of file
// order; the index discards order, so this is not semantically meaningful.
//
// Document IDs are allocated per call. Independent parses never share
// counter state, so concurrent index builds get non-overlapping, repeatable
// IDs.
func Parse(r io.Reader) ([]*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}

	var docs []*Document
	nextID := 1
	lastIndex := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], PageMarker) {
			docs = append(docs, &Document{ID: nextID, Lines: lines[i:lastIndex]})
			nextID++
			lastIndex = i
		}
	}
	return docs, nil
}
