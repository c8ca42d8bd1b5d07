package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mockQuery := &mockQueryService{
			result: domain.QueryResult{
				Answer: "The report covers Q3 [Source 1].",
				Sources: []domain.RankedSource{
					{
						DocumentID:     "doc-1",
						Filename:       "report.pdf",
						ChunkIndex:     2,
						Content:        "Q3 revenue grew.",
						RelevanceScore: 0.88,
					},
				},
			},
		}

		ports := &Ports{Query: mockQuery, Ingestion: &mockIngestionService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "what does the report cover?", TopK: 5}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "The report covers Q3 [Source 1].", output.Answer)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "doc-1", output.Sources[0].DocumentID)
		assert.Equal(t, "report.pdf", output.Sources[0].Filename)
		assert.Equal(t, 2, output.Sources[0].ChunkIndex)
		assert.Equal(t, 0.88, output.Sources[0].RelevanceScore)
		assert.Equal(t, 5, mockQuery.topK)
	})

	t.Run("propagates service errors", func(t *testing.T) {
		mockQuery := &mockQueryService{err: errors.New("embedding failed")}

		ports := &Ports{Query: mockQuery, Ingestion: &mockIngestionService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})
		assert.Error(t, err)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored documents", func(t *testing.T) {
		mockIngestion := &mockIngestionService{
			docs: []domain.DocumentInfo{
				{DocumentID: "a", Filename: "a.pdf", FileType: ".pdf", TotalChunks: 4},
				{DocumentID: "b", Filename: "b.docx", FileType: ".docx", TotalChunks: 1},
			},
		}

		ports := &Ports{Query: &mockQueryService{}, Ingestion: mockIngestion}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Documents, 2)
		assert.Equal(t, "a.pdf", output.Documents[0].Filename)
		assert.Equal(t, ".docx", output.Documents[1].FileType)
	})

	t.Run("empty store", func(t *testing.T) {
		ports := &Ports{Query: &mockQueryService{}, Ingestion: &mockIngestionService{}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Empty(t, output.Documents)
	})
}

func TestNewServer_Validation(t *testing.T) {
	t.Run("missing query service", func(t *testing.T) {
		_, err := NewServer(&Ports{Ingestion: &mockIngestionService{}})
		assert.ErrorIs(t, err, ErrMissingQueryService)
	})

	t.Run("missing ingestion service", func(t *testing.T) {
		_, err := NewServer(&Ports{Query: &mockQueryService{}})
		assert.ErrorIs(t, err, ErrMissingIngestionService)
	})
}
