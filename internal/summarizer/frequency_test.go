package summarizer

import (
	"strings"
	"testing"
)

func TestSummarizeCapsSentenceCount(t *testing.T) {
	text := "Pumps move fluid. Pumps need maintenance. Pumps have bearings. " +
		"Bearings need grease. Grease comes in grades. Filters clog over time. " +
		"Filters need replacement. Replacement intervals vary."
	s := NewFrequencySummarizer()
	got, err := s.Summarize(text, 3)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	n := len(strings.FieldsFunc(got, func(r rune) bool { return r == '.' || r == '!' || r == '?' }))
	if n > 3 {
		t.Fatalf("got %d sentences, cap 3: %q", n, got)
	}
	if got == "" {
		t.Fatalf("empty summary")
	}
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	text := "Alpha topic appears here first. Unrelated filler sentence sits between. Alpha topic appears here last."
	s := NewFrequencySummarizer()
	got, err := s.Summarize(text, 2)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	first := strings.Index(got, "first")
	last := strings.Index(got, "last")
	if first >= 0 && last >= 0 && first > last {
		t.Fatalf("selected sentences reordered: %q", got)
	}
}

func TestSummarizeIgnoresStopwords(t *testing.T) {
	// the first sentence repeats only stopwords; the content sentences share
	// real terms and must win
	text := "It is the and of to in on at by. Filters need replacement filters. Replacement filters clog."
	s := NewFrequencySummarizer()
	got, err := s.Summarize(text, 2)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if strings.Contains(got, "It is the and") {
		t.Fatalf("stopword sentence selected: %q", got)
	}
	if !strings.Contains(got, "Filters need replacement") {
		t.Fatalf("content sentence dropped: %q", got)
	}
}

func TestSummarizeTextWithoutSentenceMarks(t *testing.T) {
	s := NewFrequencySummarizer()
	got, err := s.Summarize("  just a fragment without punctuation  ", 5)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if got != "just a fragment without punctuation" {
		t.Fatalf("got %q", got)
	}
}
