package memory

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"docchat/internal/domain"
)

// Merger loads memory content relevant to the given query, to be embedded
// into the prompt. Implemented by both the snippet buffer and the dialogue
// buffer; the orchestrator composes them.
type Merger interface {
	Merge(ctx context.Context, query string) (string, error)
}

// Searcher is the retrieval capability the snippet buffer depends on.
// *index.Index satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}

// Snippets is a bounded, de-duplicating buffer of rendered document
// snippets, ordered most-recently-reinforced first. Each merge retrieves the
// chunks most similar to the query, places the novel ones at the front and
// evicts from the back once capacity k is exceeded.
type Snippets struct {
	searcher Searcher
	k        int
	snippets []string
	pages    []int
}

// Provenance is one retained snippet with its page number, for display.
// Snippet has the page tags stripped; what was sent to the model keeps them.
type Provenance struct {
	Page    int
	Snippet string
}

func NewSnippets(searcher Searcher, k int) *Snippets {
	if k <= 0 {
		k = 3
	}
	return &Snippets{searcher: searcher, k: k}
}

// Merge retrieves the chunks most similar to the query and folds them into
// the buffer. Candidates whose rendered text is already buffered are
// skipped; novel ones enter at the front in similarity order. The returned
// text is the concatenation of the retained snippets, front to back.
func (s *Snippets) Merge(ctx context.Context, query string) (string, error) {
	results, err := s.searcher.Search(ctx, query, s.k)
	if err != nil {
		return "", err
	}

	var newSnippets []string
	var newPages []int
	for _, r := range results {
		rendered := RenderSnippet(r.Chunk)
		if contains(s.snippets, rendered) || contains(newSnippets, rendered) {
			continue
		}
		newSnippets = append(newSnippets, rendered)
		newPages = append(newPages, r.Chunk.Page)
	}

	s.snippets = append(newSnippets, s.snippets...)
	s.pages = append(newPages, s.pages...)
	if len(s.snippets) > s.k {
		s.snippets = s.snippets[:s.k]
		s.pages = s.pages[:s.k]
	}
	return strings.Join(s.snippets, ""), nil
}

// Entries returns the current (page, snippet) pairs front to back, with the
// page tags stripped for display.
func (s *Snippets) Entries() []Provenance {
	out := make([]Provenance, len(s.snippets))
	for i := range s.snippets {
		out[i] = Provenance{Page: s.pages[i], Snippet: StripSnippetTags(s.snippets[i])}
	}
	return out
}

// Len reports how many snippets are buffered.
func (s *Snippets) Len() int { return len(s.snippets) }

// RenderSnippet formats a retrieved chunk for the prompt. The source is a
// plain string when the document had no distinct title, a markdown link
// otherwise, and the chunk text is wrapped in 1-based page tags.
func RenderSnippet(c domain.Chunk) string {
	var b strings.Builder
	b.WriteString("The following snippet was extracted from the following document: ")
	if c.Title == c.Source {
		b.WriteString(c.Source)
	} else {
		fmt.Fprintf(&b, "[%s](%s)", c.Title, c.Source)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "<START_SNIPPET_PAGE_%d>\n", c.Page+1)
	b.WriteString(c.Text)
	b.WriteString("\n")
	fmt.Fprintf(&b, "<END_SNIPPET_PAGE_%d>\n", c.Page+1)
	return b.String()
}

var snippetTagRe = regexp.MustCompile(`<(?:START|END)_SNIPPET_PAGE_\d+>`)

// StripSnippetTags removes the START/END page tags from a rendered snippet.
func StripSnippetTags(s string) string {
	return snippetTagRe.ReplaceAllString(s, "")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
