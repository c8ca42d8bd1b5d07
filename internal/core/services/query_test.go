package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/adapters/driven/vectorstore/memory"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// seedStore uploads chunks directly into the memory store.
func seedStore(t *testing.T, store *memory.Store, filename string, contents ...string) string {
	t.Helper()

	chunks := make([]domain.TextChunk, len(contents))
	embeddings := make([][]float32, len(contents))
	for i, content := range contents {
		chunks[i] = domain.TextChunk{Content: content, Index: i, TokenCount: len(content)}
		embeddings[i] = []float32{float32(len(content)), 1, 0}
	}

	id, err := store.StoreChunks(context.Background(), chunks, embeddings, filename, ".pdf")
	require.NoError(t, err)
	return id
}

func TestAsk_EmptyStoreReturnsFallback(t *testing.T) {
	reranker := &fakeReranker{configured: true}
	generator := &fakeGenerator{configured: true}
	svc := NewQueryService(
		&fakeEmbedder{configured: true},
		memory.NewStore(),
		reranker,
		generator,
		50, 12,
	)

	result, err := svc.Ask(context.Background(), "what is in the documents?", 0)
	require.NoError(t, err)

	assert.Contains(t, result.Answer, "upload some documents")
	assert.Empty(t, result.Sources)
	assert.Equal(t, "what is in the documents?", result.Query)
	assert.Zero(t, reranker.calls, "reranker must not run against an empty store")
	assert.Zero(t, generator.calls, "generator must not run against an empty store")
}

func TestAsk_FullPipeline(t *testing.T) {
	store := memory.NewStore()
	docID := seedStore(t, store, "manual.pdf",
		"the reactor core must stay below 600 degrees",
		"turbines are serviced every six months",
		"coolant loops are inspected weekly",
	)

	generator := &fakeGenerator{configured: true}
	svc := NewQueryService(
		&fakeEmbedder{configured: true},
		store,
		&fakeReranker{configured: true},
		generator,
		50, 2,
	)

	result, err := svc.Ask(context.Background(), "how hot can the core get?", 0)
	require.NoError(t, err)

	assert.Contains(t, result.Answer, "2 sources")
	require.Len(t, result.Sources, 2)
	assert.Equal(t, 1, generator.calls)
	assert.Greater(t, result.ProcessingTime.Nanoseconds(), int64(0))

	for _, source := range result.Sources {
		assert.Equal(t, docID, source.DocumentID)
		assert.Equal(t, "manual.pdf", source.Filename)
		assert.NotEmpty(t, source.Content)
	}
}

func TestAsk_TopKOverridesDefault(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "manual.pdf", "alpha", "beta", "gamma", "delta")

	svc := NewQueryService(
		&fakeEmbedder{configured: true},
		store,
		&fakeReranker{configured: true},
		&fakeGenerator{configured: true},
		50, 12,
	)

	result, err := svc.Ask(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Len(t, result.Sources, 3)
}

func TestAsk_SourcesKeepOriginalMetadata(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "guide.pdf", "first passage", "second passage longer text")

	// Rerank only the second candidate: the source must carry the
	// second candidate's chunk index, not the rerank position.
	reranker := &fakeReranker{
		configured: true,
		results: []driven.RerankResult{
			{Index: 1, RelevanceScore: 0.9, Document: "second passage longer text"},
		},
	}
	svc := NewQueryService(
		&fakeEmbedder{configured: true}, store, reranker,
		&fakeGenerator{configured: true}, 50, 12,
	)

	result, err := svc.Ask(context.Background(), "anything", 0)
	require.NoError(t, err)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, 0.9, result.Sources[0].RelevanceScore)
	assert.Equal(t, "second passage longer text", result.Sources[0].Content)
}

func TestAsk_RerankIndexOutOfRangeFails(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store, "guide.pdf", "only passage")

	reranker := &fakeReranker{
		configured: true,
		results:    []driven.RerankResult{{Index: 7, RelevanceScore: 0.5}},
	}
	svc := NewQueryService(
		&fakeEmbedder{configured: true}, store, reranker,
		&fakeGenerator{configured: true}, 50, 12,
	)

	_, err := svc.Ask(context.Background(), "anything", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestAsk_EmbedFailurePropagates(t *testing.T) {
	svc := NewQueryService(
		&fakeEmbedder{err: errProvider},
		memory.NewStore(),
		&fakeReranker{configured: true},
		&fakeGenerator{configured: true},
		50, 12,
	)

	_, err := svc.Ask(context.Background(), "anything", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errProvider)
}
