package fetch

import (
	"strings"
	"testing"
)

func TestTextFragmentAnchorLongChunk(t *testing.T) {
	chunk := "The quick brown fox jumps over the lazy dog while everyone watches from a safe distance nearby"
	got := TextFragmentAnchor("https://example.com/page", chunk)
	want := "https://example.com/page#:~:text=The%20quick%20brown%20fox%20jumps,from%20a%20safe%20distance%20nearby"
	if got != want {
		t.Fatalf("anchor = %q, want %q", got, want)
	}
}

func TestTextFragmentAnchorShortChunkSingleFragment(t *testing.T) {
	got := TextFragmentAnchor("https://example.com/page", "just five words right here")
	want := "https://example.com/page#:~:text=just%20five%20words%20right%20here"
	if got != want {
		t.Fatalf("anchor = %q, want %q", got, want)
	}
	if strings.Contains(got, ",") {
		t.Fatalf("short chunk must not produce a two-part fragment: %q", got)
	}
}

func TestTextFragmentAnchorEncodesHyphens(t *testing.T) {
	got := TextFragmentAnchor("https://example.com/a", "state-of-the-art text-fragment handling works well today truly")
	if strings.Contains(got, "state-of") {
		t.Fatalf("hyphens must be percent-encoded: %q", got)
	}
	if !strings.Contains(got, "state%2Dof%2Dthe%2Dart") {
		t.Fatalf("expected %%2D for hyphens, got %q", got)
	}
}

func TestTextFragmentAnchorCollapsesWhitespace(t *testing.T) {
	got := TextFragmentAnchor("https://example.com/a", "  spaced\tout\n  words   here  now ")
	want := "https://example.com/a#:~:text=spaced%20out%20words%20here%20now"
	if got != want {
		t.Fatalf("anchor = %q, want %q", got, want)
	}
}

func TestTextFragmentAnchorEmptyChunk(t *testing.T) {
	got := TextFragmentAnchor("https://example.com/a", "   ")
	if got != "https://example.com/a" {
		t.Fatalf("empty chunk should return the base URL, got %q", got)
	}
}

func TestEncodeFragmentKeepsUnreserved(t *testing.T) {
	got := encodeFragment("v1.2_rc~final & more")
	want := "v1.2_rc~final%20%26%20more"
	if got != want {
		t.Fatalf("encoded = %q, want %q", got, want)
	}
}
