package driven

import "github.com/custodia-labs/docqa/internal/core/domain"

// Chunker splits document text into ordered, token-bounded chunks.
// Empty or whitespace-only input yields an empty sequence, not an error.
type Chunker interface {
	Chunk(text string) ([]domain.TextChunk, error)
}
