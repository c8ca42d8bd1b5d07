package domain

import "time"

// ScoredChunk is a vector search hit: a stored chunk with its cosine
// similarity score against the query vector.
type ScoredChunk struct {
	Content    string
	DocumentID string
	Filename   string
	ChunkIndex int
	Score      float64
}

// RankedSource is a chunk that survived reranking, carried into answer
// generation and returned to the caller as a citation.
type RankedSource struct {
	DocumentID string
	Filename   string
	ChunkIndex int
	Content    string

	// RelevanceScore is the reranker's score, not the vector similarity.
	RelevanceScore float64
}

// QueryResult is the outcome of one question through the query pipeline.
type QueryResult struct {
	Answer  string
	Sources []RankedSource
	Query   string

	// ProcessingTime is the total pipeline duration.
	ProcessingTime time.Duration
}

// HealthStatus reports collaborator reachability and configuration.
// Missing credentials degrade the status rather than failing requests
// eagerly; a request that needs the collaborator still fails.
type HealthStatus struct {
	Status           string
	QdrantConnected  bool
	VoyageConfigured bool
	GeminiConfigured bool
	Version          string
}

// Health status values.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)
