package ingest

import (
	"regexp"
	"strings"

	"github.com/quizforge/studyrag/internal/fault"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ChunkText splits a document body into overlapping fixed-size windows.
// Whitespace runs are collapsed to single spaces first, so page breaks and
// layout are deliberately blurred in favor of embedding quality. The
// window advances by size-overlap characters; the final window may be
// shorter than size. Empty input yields no chunks.
func ChunkText(text string, size, overlap int) ([]string, error) {
	if size <= 0 {
		return nil, fault.New(fault.KindConfig, "chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		// overlap >= size would never advance the cursor
		return nil, fault.New(fault.KindConfig, "chunk overlap %d must satisfy 0 <= overlap < size (%d)", overlap, size)
	}

	normalized := strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if normalized == "" {
		return nil, nil
	}

	runes := []rune(normalized)
	step := size - overlap
	var chunks []string
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
