package corpus

import "testing"

func testDocument() *Document {
	return &Document{
		ID: 1,
		Lines: []string{
			"*PAGE:http://x.com",
			"title1",
			"word1",
			"word2",
		},
	}
}

func TestURLStripsPageMarker(t *testing.T) {
	doc := testDocument()
	if got := doc.URL(); got != "http://x.com" {
		t.Errorf("URL() = %q, want %q", got, "http://x.com")
	}
}

func TestTitleIsSecondLine(t *testing.T) {
	doc := testDocument()
	if got := doc.Title(); got != "title1" {
		t.Errorf("Title() = %q, want %q", got, "title1")
	}
}

func TestWordFrequency(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name string
		term string
		want int
	}{
		{"present once", "word1", 1},
		{"case insensitive", "WORD1", 1},
		{"absent", "word3", 0},
		{"empty term", "", 0},
		{"page marker line is metadata", "*PAGE:http://x.com", 0},
		{"title line is metadata", "title1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.WordFrequency(tt.term); got != tt.want {
				t.Errorf("WordFrequency(%q) = %d, want %d", tt.term, got, tt.want)
			}
		})
	}
}

func TestWordFrequencySkipsEmptyLines(t *testing.T) {
	doc := &Document{ID: 1, Lines: []string{"*PAGE:http://x.com", "title1", "", "word1", "", "word1"}}
	if got := doc.WordFrequency("word1"); got != 2 {
		t.Errorf("WordFrequency(word1) = %d, want 2", got)
	}
	if got := doc.TotalWords(); got != 2 {
		t.Errorf("TotalWords() = %d, want 2", got)
	}
}

func TestTotalWordsCountsBodyLinesOnly(t *testing.T) {
	doc := testDocument()
	if got := doc.TotalWords(); got != 2 {
		t.Errorf("TotalWords() = %d, want 2", got)
	}
}

func TestContainsTerm(t *testing.T) {
	doc := testDocument()

	tests := []struct {
		name string
		term string
		want bool
	}{
		{"body term", "word1", true},
		{"metadata line matches too", "title1", true},
		{"case sensitive", "WORD1", false},
		{"absent", "word3", false},
		{"empty term", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.ContainsTerm(tt.term); got != tt.want {
				t.Errorf("ContainsTerm(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestContainsTermRequiresBodyContent(t *testing.T) {
	// A document holding only url and title never matches, even when the
	// term is textually present.
	doc := &Document{ID: 1, Lines: []string{"*PAGE:http://x.com", "title1"}}
	if doc.ContainsTerm("title1") {
		t.Error("ContainsTerm matched a document with no body content")
	}
}
