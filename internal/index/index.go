package index

import (
	"context"

	"docchat/internal/domain"
	"docchat/internal/embedding"
	"docchat/internal/vectorstore"
)

// Index is a similarity-searchable collection of document chunks. It is
// built once per distinct URL set and discarded when that set changes.
type Index struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	urls     map[string]struct{}
	size     int

	// Summary is a short extractive summary of the indexed corpus, shown by
	// the UI after a build.
	Summary string
}

// Len reports how many chunks the index holds.
func (ix *Index) Len() int { return ix.size }

// Covers reports whether the index was built from exactly the given URL set.
// Order is irrelevant; the session driver rebuilds when this returns false.
func (ix *Index) Covers(urls []string) bool {
	if len(ix.urls) != len(dedupe(urls)) {
		return false
	}
	for _, u := range urls {
		if _, ok := ix.urls[u]; !ok {
			return false
		}
	}
	return true
}

// Search returns the topK chunks most similar to the query, ordered by
// descending score. Ties keep the index's insertion order. Querying an index
// with zero chunks yields *domain.EmptyIndexError.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	if ix.size == 0 {
		return nil, &domain.EmptyIndexError{Query: query}
	}
	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return ix.store.Search(vec, topK)
}

func dedupe(urls []string) map[string]struct{} {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set
}
