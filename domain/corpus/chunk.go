package corpus

import (
	"strings"
	"unicode"
)

const (
	// DefaultChunkSize is the target number of tokens per chunk.
	DefaultChunkSize = 512
	// DefaultChunkOverlap is the number of overlapping tokens between chunks.
	DefaultChunkOverlap = 50
)

// Chunk is one overlapping window of a longer document. The live pipeline
// uploads whole artifacts; chunking serves the multi-document corpus build
// where passage-level granularity helps the retriever.
type Chunk struct {
	Text  string
	Index int
}

// ChunkText splits text into overlapping windows of ~size tokens (word-count
// approximation), never breaking inside a sentence.
func ChunkText(text string, size, overlap int) []Chunk {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []Chunk
	start := 0
	for start < len(sentences) {
		var buf strings.Builder
		tokens := 0
		end := start

		for end < len(sentences) {
			words := wordCount(sentences[end])
			if tokens+words > size && tokens > 0 {
				break
			}
			if buf.Len() > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(sentences[end])
			tokens += words
			end++
		}

		chunks = append(chunks, Chunk{Text: buf.String(), Index: len(chunks)})

		// Back up by the overlap budget, guaranteeing forward progress.
		overlapTokens := 0
		next := end
		for next > start && overlapTokens < overlap {
			next--
			overlapTokens += wordCount(sentences[next])
		}
		if next == start {
			next = end
		}
		start = next
	}
	return chunks
}

// SplitSentences splits text on sentence-ending punctuation and newlines.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if r == '\n' || i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
