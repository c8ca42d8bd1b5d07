package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func storeDocument(t *testing.T, s *Store, filename string, contents []string, vectors [][]float32) string {
	t.Helper()

	chunks := make([]domain.TextChunk, len(contents))
	for i, c := range contents {
		chunks[i] = domain.TextChunk{Content: c, Index: i, TokenCount: 1}
	}

	id, err := s.StoreChunks(context.Background(), chunks, vectors, filename, ".pdf")
	require.NoError(t, err)
	return id
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	s := NewStore()
	storeDocument(t, s, "a.pdf",
		[]string{"aligned", "orthogonal", "opposite"},
		[][]float32{{1, 0}, {0, 1}, {-1, 0}},
	)

	results, err := s.Search(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "aligned", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.Equal(t, "orthogonal", results[1].Content)
	assert.InDelta(t, 0.0, results[1].Score, 1e-9)
}

func TestListDocuments_DeduplicatesByID(t *testing.T) {
	s := NewStore()
	idA := storeDocument(t, s, "a.pdf", []string{"one", "two"}, [][]float32{{1}, {2}})
	storeDocument(t, s, "b.pdf", []string{"three"}, [][]float32{{3}})

	docs, err := s.ListDocuments(context.Background())
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, idA, docs[0].DocumentID)
	assert.Equal(t, 2, docs[0].TotalChunks)
}

func TestDeleteDocument(t *testing.T) {
	s := NewStore()
	idA := storeDocument(t, s, "a.pdf", []string{"one", "two"}, [][]float32{{1}, {2}})
	storeDocument(t, s, "b.pdf", []string{"three"}, [][]float32{{3}})

	deleted, err := s.DeleteDocument(context.Background(), idA)
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.Equal(t, 1, s.Len())

	deleted, err = s.DeleteDocument(context.Background(), idA)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestStoreChunks_LengthMismatch(t *testing.T) {
	s := NewStore()

	_, err := s.StoreChunks(context.Background(),
		[]domain.TextChunk{{Content: "one"}}, nil, "a.pdf", ".pdf")

	assert.Error(t, err)
}
