package driven

import "context"

// RerankResult is a single reranked document with its relevance score.
type RerankResult struct {
	// Index is the position of the document in the input slice.
	Index int

	// RelevanceScore is the reranker's query-document relevance.
	RelevanceScore float64

	// Document is the reranked document text.
	Document string
}

// Reranker performs second-pass relevance scoring over a coarse candidate
// set, returning a smaller, higher-precision subset ordered by relevance.
type Reranker interface {
	// Rerank scores documents against the query and returns at most topK
	// results, best first. Implementations clamp topK to len(documents).
	Rerank(ctx context.Context, query string, documents []string, topK int) ([]RerankResult, error)

	// Configured reports whether a credential is present.
	Configured() bool
}
