package index

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"docchat/internal/domain"
	"docchat/internal/embedding"
	"docchat/internal/fetch"
	"docchat/internal/vectorstore"
)

// Fetcher retrieves and parses one document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.Document, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Builder turns an ordered URL set into a searchable Index. Builds for the
// same session are serialized: two rebuilds must never race on one store.
type Builder struct {
	fetcher    Fetcher
	chunker    domain.Chunker
	embedder   embedding.Embedder
	newStore   func() vectorstore.Storage
	summarizer Summarizer
	maxSummary int

	mu sync.Mutex
}

func NewBuilder(fetcher Fetcher, chunker domain.Chunker, embedder embedding.Embedder, newStore func() vectorstore.Storage) *Builder {
	return &Builder{fetcher: fetcher, chunker: chunker, embedder: embedder, newStore: newStore}
}

// WithSummarizer makes builds attach a corpus summary to the Index.
func (b *Builder) WithSummarizer(s Summarizer, maxSentences int) *Builder {
	b.summarizer = s
	b.maxSummary = maxSentences
	return b
}

// Build fetches, chunks, embeds and stores every URL, in URL-list order. Any
// failing URL aborts the whole build; partial work is discarded and no index
// is returned.
func (b *Builder) Build(ctx context.Context, urls []string) (*Index, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs to index")
	}

	var allChunks []domain.Chunk
	var corpus strings.Builder
	for _, u := range urls {
		doc, err := b.fetcher.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		chunks, err := b.chunker.Chunk(doc)
		if err != nil {
			return nil, &domain.ParseError{URL: u, Err: err}
		}
		// HTML chunks get a deep link that highlights the extracted text
		if doc.Type == domain.DocTypeHTML {
			for i := range chunks {
				chunks[i].Source = fetch.TextFragmentAnchor(doc.URL, chunks[i].Text)
			}
		}
		allChunks = append(allChunks, chunks...)
		for _, p := range doc.Pages {
			corpus.WriteString("\n")
			corpus.WriteString(p.Text)
		}
	}

	texts := make([]string, len(allChunks))
	for i, c := range allChunks {
		texts[i] = c.Text
	}
	if err := b.embedder.Prepare(texts); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(allChunks))
	for i := range allChunks {
		vec, err := b.embedder.Embed(ctx, allChunks[i].Text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}

	dimension := b.embedder.Dimension()
	if dimension == 0 && len(vectors) > 0 {
		dimension = len(vectors[0])
	}

	store := b.newStore()
	if err := store.Clear(); err != nil {
		return nil, err
	}
	if err := store.Init(dimension); err != nil {
		return nil, err
	}
	if err := store.Upsert(allChunks, vectors); err != nil {
		return nil, err
	}

	ix := &Index{
		embedder: b.embedder,
		store:    store,
		urls:     dedupe(urls),
		size:     len(allChunks),
	}
	if b.summarizer != nil {
		summary, err := b.summarizer.Summarize(corpus.String(), b.maxSummary)
		if err == nil {
			ix.Summary = summary
		}
	}
	return ix, nil
}
