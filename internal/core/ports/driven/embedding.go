package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Providers distinguish between indexing and search inputs, so document
// and query embedding are separate operations even though both produce
// vectors of the same fixed dimensionality.
//
// Implementations may include:
//   - Voyage AI (voyage-3)
//   - OpenAI (text-embedding-3-small) behind a compatible adapter
type EmbeddingService interface {
	// EmbedDocuments generates embeddings for document chunks.
	// Implementations sub-batch internally to respect per-request item
	// limits; the result order matches the input order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates the embedding for a search query.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g. 1024).
	// This must match the vector store's collection configuration.
	Dimensions() int

	// Configured reports whether a credential is present. An unconfigured
	// service degrades the health probe; calls against it fail.
	Configured() bool
}
