package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. The HTTP layer dispatches
// on error kind via errors.Is, never on message content.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Maps to a 4xx response with the message passed through verbatim.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file extension outside the allow list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrEmptyDocument indicates an upload with no content, no extractable
	// text, or text that produced zero chunks.
	ErrEmptyDocument = errors.New("empty document")

	// ErrFileTooLarge indicates an upload over the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and querying are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the answer generator is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// IsClientError reports whether err should surface as a 4xx rather than
// a collaborator failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrEmptyDocument) ||
		errors.Is(err, ErrFileTooLarge)
}
