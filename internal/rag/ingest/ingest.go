package ingest

import (
	"strings"
	"unicode"

	"github.com/akolanti/quizcrafter/internal/adapter/utils"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/quizErrors"
)

//splitter

// Chunker cuts text into fixed size windows. Sizes count runes, not bytes,
// so a multi-byte character is never split.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size int, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, quizErrors.NewConfigError("chunk_size", "must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, quizErrors.NewConfigError("chunk_overlap", "must be in [0, %d), got %d", size, overlap)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Split returns the chunks in document order. Every chunk holds at most size
// runes, consecutive chunks share exactly overlap runes and the last chunk
// ends at the end of the text.
func (c *Chunker) Split(text string) []commonModels.DocChunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var chunks []commonModels.DocChunk
	for start := 0; ; start += step {
		end := min(start+c.size, len(runes))
		chunks = append(chunks, commonModels.DocChunk{
			ChunkId: utils.GetNewUUID(),
			Order:   len(chunks),
			Start:   start,
			Content: string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}

func (c *Chunker) Overlap() int {
	return c.overlap
}

// Reassemble drops the shared prefix of every chunk after the first and joins
// the rest, which yields the original text.
func Reassemble(chunks []commonModels.DocChunk, overlap int) string {
	var sb strings.Builder
	for i, chunk := range chunks {
		if i == 0 {
			sb.WriteString(chunk.Content)
			continue
		}
		sb.WriteString(string([]rune(chunk.Content)[overlap:]))
	}
	return sb.String()
}

// NormalizeText joins page texts and tidies whitespace: runs of spaces and tabs
// become one space, more than one blank line becomes one blank line.
func NormalizeText(pages []commonModels.Page) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Content)
	}
	raw := strings.ReplaceAll(strings.Join(parts, "\n"), "\r\n", "\n")

	var sb strings.Builder
	sb.Grow(len(raw))
	pendingSpace := false
	newlines := 0
	for _, r := range raw {
		switch {
		case r == '\n':
			pendingSpace = false
			newlines++
		case unicode.IsSpace(r):
			pendingSpace = true
		default:
			if newlines > 0 {
				sb.WriteString(strings.Repeat("\n", min(newlines, 2)))
				newlines = 0
			} else if pendingSpace {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
