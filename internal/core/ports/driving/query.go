package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// QueryService answers natural-language questions over stored documents.
type QueryService interface {
	// Ask runs the retrieve-rerank-generate pipeline. topK bounds the
	// number of sources handed to the answer generator; zero means the
	// configured default.
	Ask(ctx context.Context, question string, topK int) (domain.QueryResult, error)
}

// HealthService reports collaborator reachability and configuration.
type HealthService interface {
	Status(ctx context.Context) domain.HealthStatus
}
