package summarizer

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var sentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

// FrequencySummarizer builds short extractive summaries: sentences are scored
// by normalized token frequency and the top scorers are returned in their
// original order. No API calls, so a build can report a corpus summary
// without spending tokens.
type FrequencySummarizer struct {
	tokenRe   *regexp.Regexp
	stopwords map[string]struct{}
}

func NewFrequencySummarizer() *FrequencySummarizer {
	return &FrequencySummarizer{
		tokenRe:   regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords: defaultStopwords(),
	}
}

// Summarize reduces text to at most maxSentences sentences. Text without
// sentence punctuation is returned trimmed and whole.
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) (string, error) {
	if maxSentences <= 0 {
		maxSentences = 5
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text), nil
	}

	freq := make(map[string]float64)
	for _, sent := range sentences {
		for _, tok := range s.tokenize(sent) {
			freq[tok]++
		}
	}
	var top float64
	for _, v := range freq {
		if v > top {
			top = v
		}
	}
	if top > 0 {
		for k := range freq {
			freq[k] /= top
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sent := range sentences {
		toks := s.tokenize(sent)
		var sum float64
		for _, tok := range toks {
			sum += freq[tok]
		}
		if n := float64(len(toks)); n > 0 {
			// sqrt keeps long sentences from winning on length alone
			sum /= math.Sqrt(n)
		}
		ranked[i] = scored{i, sum}
	}
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if maxSentences > len(ranked) {
		maxSentences = len(ranked)
	}

	keep := make([]int, maxSentences)
	for i := range keep {
		keep[i] = ranked[i].idx
	}
	sort.Ints(keep)

	out := make([]string, len(keep))
	for i, idx := range keep {
		out[i] = strings.TrimSpace(sentences[idx])
	}
	return strings.Join(out, " "), nil
}

func (s *FrequencySummarizer) tokenize(text string) []string {
	raw := s.tokenRe.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := s.stopwords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
