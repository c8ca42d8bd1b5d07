package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// IngestionService manages document upload and lifecycle.
type IngestionService interface {
	// Upload validates, parses, chunks, embeds, and stores a document.
	Upload(ctx context.Context, filename string, content []byte) (domain.UploadReceipt, error)

	// List returns the stored documents, deduplicated by ID.
	List(ctx context.Context) ([]domain.DocumentInfo, error)

	// Delete removes a document and all its chunks, returning the number
	// of chunks deleted. A missing document returns domain.ErrNotFound.
	Delete(ctx context.Context, documentID string) (int, error)
}
