package chunker

import (
	"regexp"
	"strings"

	"docchat/internal/domain"
)

// SentenceChunker splits page text into sentence-based chunks with overlap.
// Alternative to CharChunker for prose-heavy documents.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, page := range document.Pages {
		sentences := c.splitter.FindAllString(page.Text, -1)
		if len(sentences) == 0 {
			trimmed := strings.TrimSpace(page.Text)
			if trimmed == "" {
				continue
			}
			sentences = []string{trimmed}
		}
		for i := range sentences {
			sentences[i] = strings.TrimSpace(sentences[i])
		}
		i := 0
		for i < len(sentences) {
			end := i + c.sentencesPerChunk
			if end > len(sentences) {
				end = len(sentences)
			}
			chunks = append(chunks, domain.Chunk{
				Text:   strings.Join(sentences[i:end], " "),
				Source: document.URL,
				Title:  document.Title,
				Page:   page.Number,
				Type:   document.Type,
			})
			if end == len(sentences) {
				break
			}
			i = end - c.overlapSentences
			if i < 0 {
				i = 0
			}
		}
	}
	return chunks, nil
}
