package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// emptyStoreAnswer is returned when vector search finds no candidates.
// Neither the reranker nor the answer generator is invoked in that case.
const emptyStoreAnswer = "I couldn't find any relevant documents to answer your question. Please upload some documents first."

// QueryService runs the question pipeline:
// embed -> search -> rerank -> generate.
type QueryService struct {
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	reranker  driven.Reranker
	generator driven.AnswerGenerator

	searchTopK int
	rerankTopK int
}

// NewQueryService creates a new query service. searchTopK is the coarse
// candidate count retrieved from the store; rerankTopK is the default
// number of sources handed to the answer generator.
func NewQueryService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	reranker driven.Reranker,
	generator driven.AnswerGenerator,
	searchTopK, rerankTopK int,
) *QueryService {
	return &QueryService{
		embedder:   embedder,
		store:      store,
		reranker:   reranker,
		generator:  generator,
		searchTopK: searchTopK,
		rerankTopK: rerankTopK,
	}
}

// Ask answers the question from stored documents, returning the answer,
// its cited sources, and the pipeline duration.
func (s *QueryService) Ask(ctx context.Context, question string, topK int) (domain.QueryResult, error) {
	logger.Section("Query Execution")
	start := time.Now()

	logger.Info("Processing query: %.100s", question)
	queryVector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("embed query: %w", err)
	}

	if err := s.store.EnsureCollection(ctx); err != nil {
		return domain.QueryResult{}, fmt.Errorf("ensure collection: %w", err)
	}

	logger.Info("Searching for candidates")
	candidates, err := s.store.Search(ctx, queryVector, s.searchTopK)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("vector search: %w", err)
	}

	if len(candidates) == 0 {
		return domain.QueryResult{
			Answer:         emptyStoreAnswer,
			Sources:        []domain.RankedSource{},
			Query:          question,
			ProcessingTime: time.Since(start),
		}, nil
	}

	logger.Info("Reranking %d candidates", len(candidates))
	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Content
	}
	if topK <= 0 {
		topK = s.rerankTopK
	}
	reranked, err := s.reranker.Rerank(ctx, question, documents, topK)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("rerank: %w", err)
	}

	// Map reranked indices back onto the original candidates' metadata.
	sources := make([]domain.RankedSource, 0, len(reranked))
	for _, r := range reranked {
		if r.Index < 0 || r.Index >= len(candidates) {
			return domain.QueryResult{}, fmt.Errorf("rerank: index %d out of range", r.Index)
		}
		original := candidates[r.Index]
		sources = append(sources, domain.RankedSource{
			DocumentID:     original.DocumentID,
			Filename:       original.Filename,
			ChunkIndex:     original.ChunkIndex,
			Content:        r.Document,
			RelevanceScore: r.RelevanceScore,
		})
	}

	logger.Info("Generating answer from %d sources", len(sources))
	answer, err := s.generator.Generate(ctx, question, sources)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("generate answer: %w", err)
	}

	elapsed := time.Since(start)
	logger.Info("Query processed in %s", elapsed)

	return domain.QueryResult{
		Answer:         answer,
		Sources:        sources,
		Query:          question,
		ProcessingTime: elapsed,
	}, nil
}
