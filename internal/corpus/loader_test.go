package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "websearch/pkg/errors"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

const fixture = `*PAGE:http://a.com
title1
word1
word2
*PAGE:http://b.com
title2
word1
word3
`

func TestParsePartitionsOnPageMarker(t *testing.T) {
	docs, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}

	// The scan runs back to front, so the last page in the file comes out
	// first. Order is not meaningful downstream, but it is deterministic.
	if got := docs[0].URL(); got != "http://b.com" {
		t.Errorf("docs[0].URL() = %q, want %q", got, "http://b.com")
	}
	if got := docs[1].URL(); got != "http://a.com" {
		t.Errorf("docs[1].URL() = %q, want %q", got, "http://a.com")
	}
	if got := docs[1].Title(); got != "title1" {
		t.Errorf("docs[1].Title() = %q, want %q", got, "title1")
	}
}

func TestParseAssignsUniqueIDsPerCall(t *testing.T) {
	first, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := Parse(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	seen := make(map[int]bool)
	for _, doc := range first {
		if seen[doc.ID] {
			t.Errorf("duplicate ID %d within one parse", doc.ID)
		}
		seen[doc.ID] = true
	}
	// The allocator is scoped per call, so a fresh parse restarts rather
	// than continuing a process-wide counter.
	if first[0].ID != second[0].ID {
		t.Errorf("ID allocation not repeatable: %d vs %d", first[0].ID, second[0].ID)
	}
}

func TestParseEmptyInput(t *testing.T) {
	docs, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents from empty input, want 0", len(docs))
	}
}

func TestParseIgnoresLinesBeforeFirstMarker(t *testing.T) {
	docs, err := Parse(strings.NewReader("stray\nlines\n" + fixture))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d documents, want 2", len(docs))
	}
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Load of a missing file returned nil error")
	}
	if !errors.Is(err, apperrors.ErrCorpusUnreadable) {
		t.Errorf("error = %v, want ErrCorpusUnreadable", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := writeFile(path, fixture); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	docs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d documents, want 2", len(docs))
	}
}
