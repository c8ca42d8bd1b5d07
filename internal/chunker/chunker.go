// Package chunker provides token-aware text chunking with overlap.
package chunker

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default chunk window in tokens.
const DefaultChunkSize = 1000

// DefaultOverlap is the default overlap between consecutive windows
// in tokens.
const DefaultOverlap = 100

// Normalisation patterns applied before tokenization.
var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	multiSpace   = regexp.MustCompile(` {2,}`)
	controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// sentenceEndings are the terminator patterns considered for boundary
// snapping, matched in the trailing portion of a decoded window.
var sentenceEndings = []string{".", "!", "?", ".\n", "!\n", "?\n"}

// Chunker splits text into overlapping, token-bounded chunks. Non-final
// chunks snap to the last sentence boundary found in their trailing 20%;
// the final chunk is the remaining tail, never adjusted.
//
// Chunker is pure computation with no I/O and is safe for concurrent use.
type Chunker struct {
	tokenizer driven.Tokenizer
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in tokens.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive windows in tokens.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker over the given tokenizer.
func New(tokenizer driven.Tokenizer, opts ...Option) *Chunker {
	c := &Chunker{
		tokenizer: tokenizer,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave the window room to advance.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into overlapping chunks based on token count.
// Empty or whitespace-only input returns no chunks and no error.
func (c *Chunker) Chunk(text string) ([]domain.TextChunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	text = normalise(text)

	tokens := c.tokenizer.Encode(text)
	total := len(tokens)

	if total <= c.chunkSize {
		// Text fits in a single chunk.
		return []domain.TextChunk{{
			Content:    text,
			Index:      0,
			TokenCount: total,
		}}, nil
	}

	var chunks []domain.TextChunk
	start := 0
	index := 0

	for start < total {
		end := start + c.chunkSize
		if end > total {
			end = total
		}

		content := c.tokenizer.Decode(tokens[start:end])

		// Snap non-final windows to a sentence boundary. The final
		// window is the exact remaining tail.
		if end < total {
			content = snapToSentence(content)
		}

		chunks = append(chunks, domain.TextChunk{
			Content: strings.TrimSpace(content),
			Index:   index,
			// Recount after snapping: the window length no longer
			// describes the adjusted text.
			TokenCount: c.tokenizer.Count(content),
		})

		logger.Debug("Created chunk %d with %d tokens", index, end-start)

		// The next start backs up from the pre-snap window end, so the
		// effective overlap shrinks when a chunk was snapped shorter.
		if end < total {
			start = end - c.overlap
		} else {
			start = total
		}
		index++
	}

	logger.Info("Split text into %d chunks (total tokens: %d)", len(chunks), total)
	return chunks, nil
}

// normalise collapses whitespace runs and strips ASCII control characters.
func normalise(text string) string {
	text = multiNewline.ReplaceAllString(text, "\n\n")
	text = multiSpace.ReplaceAllString(text, " ")
	text = controlChars.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// snapToSentence truncates text just after the last sentence terminator
// found in its trailing 20% by character count. Text without a terminator
// there is returned unchanged; snapping only ever shrinks a chunk.
func snapToSentence(text string) string {
	cutoff := int(float64(len(text)) * 0.8)
	tail := text[cutoff:]

	last := -1
	endingLen := 0
	for _, ending := range sentenceEndings {
		if pos := strings.LastIndex(tail, ending); pos > last {
			last = pos
			endingLen = len(ending)
		}
	}

	if last == -1 {
		return text
	}
	return text[:cutoff+last+endingLen]
}
