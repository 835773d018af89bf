package documents

import (
	"strings"

	"github.com/tripmind/travel-concierge/internal/types"
)

const (
	defaultChunkSize = 1000
	defaultOverlap   = 200
	minChunkLength   = 50
)

// ChunkText splits text into overlapping windows. When the window boundary
// falls past the 50% mark of the chunk, the split is pulled back to the last
// sentence or paragraph break. Chunks shorter than minChunkLength are
// dropped.
func ChunkText(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = defaultOverlap
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		chunk := text[start:end]

		if end < len(text) {
			lastPeriod := strings.LastIndex(chunk, ".")
			lastNewline := strings.LastIndex(chunk, "\n")
			breakPoint := lastPeriod
			if lastNewline > breakPoint {
				breakPoint = lastNewline
			}
			if breakPoint > chunkSize/2 {
				chunk = chunk[:breakPoint+1]
				end = start + breakPoint + 1
			}
		}

		if trimmed := strings.TrimSpace(chunk); len(trimmed) > minChunkLength {
			chunks = append(chunks, trimmed)
		}
		if end == len(text) {
			break
		}
		// Always make forward progress even with aggressive overlap.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// ProcessDocument extracts the text of an uploaded file and chunks it for
// session memory.
func ProcessDocument(filename string, content []byte) ([]types.DocumentChunk, error) {
	text, err := ExtractText(filename, content)
	if err != nil {
		return nil, err
	}

	raw := ChunkText(text, defaultChunkSize, defaultOverlap)
	chunks := make([]types.DocumentChunk, len(raw))
	for i, c := range raw {
		chunks[i] = types.DocumentChunk{
			Content:     c,
			Filename:    filename,
			ChunkIndex:  i,
			TotalChunks: len(raw),
		}
	}
	return chunks, nil
}
