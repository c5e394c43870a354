package chunker

import (
	"docchat/internal/domain"
)

// CharChunker splits each document page into fixed-length character chunks
// with overlap between neighbors. Lengths are counted in runes so multi-byte
// text never splits mid-character.
type CharChunker struct {
	chunkSize int
	overlap   int
}

func NewCharChunker(chunkSize, overlap int) *CharChunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize - 1
	}
	return &CharChunker{chunkSize: chunkSize, overlap: overlap}
}

func (c *CharChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, page := range document.Pages {
		runes := []rune(page.Text)
		if len(runes) == 0 {
			continue
		}
		step := c.chunkSize - c.overlap
		for start := 0; start < len(runes); start += step {
			end := start + c.chunkSize
			if end > len(runes) {
				end = len(runes)
			}
			chunks = append(chunks, domain.Chunk{
				Text:   string(runes[start:end]),
				Source: document.URL,
				Title:  document.Title,
				Page:   page.Number,
				Type:   document.Type,
			})
			if end == len(runes) {
				break
			}
		}
	}
	return chunks, nil
}
