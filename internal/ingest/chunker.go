package ingest

import (
	"strings"
)

// Chunker splits text into line-based chunks with character overlap,
// mirroring the chunking used when the knowledge base was first built so
// re-ingestion produces comparable passages.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker. chunkSize is the target chunk length in
// characters; overlap is how many trailing characters carry over into the
// next chunk.
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split breaks text on newlines and greedily packs the pieces into chunks
// of at most chunkSize characters. Consecutive chunks share the trailing
// lines of their predecessor up to the configured overlap. A single line
// longer than chunkSize becomes its own chunk.
func (c *Chunker) Split(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n"))

		// Carry trailing lines into the next chunk as overlap.
		var kept []string
		keptLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			lineLen := len(current[i]) + 1
			if keptLen+lineLen > c.overlap {
				break
			}
			kept = append([]string{current[i]}, kept...)
			keptLen += lineLen
		}
		current = kept
		currentLen = keptLen
	}

	for _, line := range lines {
		if currentLen+len(line)+1 > c.chunkSize && currentLen > 0 {
			flush()
		}
		current = append(current, line)
		currentLen += len(line) + 1
	}
	if len(current) > 0 {
		// Skip a trailing chunk that is pure overlap of the previous one.
		last := strings.Join(current, "\n")
		if len(chunks) == 0 || !strings.HasSuffix(chunks[len(chunks)-1], last) {
			chunks = append(chunks, last)
		}
	}
	return chunks
}
