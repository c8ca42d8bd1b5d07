package services

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure HealthService implements the interface.
var _ driving.HealthService = (*HealthService)(nil)

// HealthService reports collaborator reachability and configuration.
// Missing credentials surface here as "degraded" instead of failing
// requests eagerly.
type HealthService struct {
	store     driven.VectorStore
	embedder  driven.EmbeddingService
	generator driven.AnswerGenerator
	version   string
}

// NewHealthService creates a new health service.
func NewHealthService(
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	generator driven.AnswerGenerator,
	version string,
) *HealthService {
	return &HealthService{
		store:     store,
		embedder:  embedder,
		generator: generator,
		version:   version,
	}
}

// Status probes the vector store and checks collaborator credentials.
func (s *HealthService) Status(ctx context.Context) domain.HealthStatus {
	qdrantConnected := s.store.Ping(ctx) == nil
	voyageConfigured := s.embedder.Configured()
	geminiConfigured := s.generator.Configured()

	if !qdrantConnected {
		logger.Warn("Health check: Qdrant not connected")
	}
	if !voyageConfigured {
		logger.Warn("Health check: Voyage AI not configured")
	}
	if !geminiConfigured {
		logger.Warn("Health check: Gemini not configured")
	}

	status := domain.StatusHealthy
	if !qdrantConnected || !voyageConfigured || !geminiConfigured {
		status = domain.StatusDegraded
	}

	return domain.HealthStatus{
		Status:           status,
		QdrantConnected:  qdrantConnected,
		VoyageConfigured: voyageConfigured,
		GeminiConfigured: geminiConfigured,
		Version:          s.version,
	}
}
