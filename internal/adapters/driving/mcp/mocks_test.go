package mcp

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	result domain.QueryResult
	err    error
	topK   int
}

func (m *mockQueryService) Ask(_ context.Context, _ string, topK int) (domain.QueryResult, error) {
	m.topK = topK
	return m.result, m.err
}

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	docs []domain.DocumentInfo
	err  error
}

func (m *mockIngestionService) Upload(_ context.Context, _ string, _ []byte) (domain.UploadReceipt, error) {
	return domain.UploadReceipt{}, m.err
}

func (m *mockIngestionService) List(_ context.Context) ([]domain.DocumentInfo, error) {
	return m.docs, m.err
}

func (m *mockIngestionService) Delete(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

var (
	_ driving.QueryService     = (*mockQueryService)(nil)
	_ driving.IngestionService = (*mockIngestionService)(nil)
)
