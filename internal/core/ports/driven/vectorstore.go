package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// VectorStore persists chunk embeddings and supports similarity search
// over them. One collection holds one embedding space: fixed
// dimensionality, cosine distance.
type VectorStore interface {
	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context) error

	// StoreChunks upserts one point per chunk, pairing chunks[i] with
	// embeddings[i], and returns the generated document ID. Upserts are
	// batched internally; there is no rollback of partially upserted
	// points on failure.
	StoreChunks(ctx context.Context, chunks []domain.TextChunk, embeddings [][]float32, filename, fileType string) (string, error)

	// Search returns the topK nearest stored chunks to the query vector.
	Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error)

	// ListDocuments scans the collection and returns the stored documents
	// deduplicated by document ID. O(total chunks) per call.
	ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error)

	// DeleteDocument removes every chunk of the document and returns the
	// number of chunks deleted. Zero means the document did not exist.
	DeleteDocument(ctx context.Context, documentID string) (int, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
