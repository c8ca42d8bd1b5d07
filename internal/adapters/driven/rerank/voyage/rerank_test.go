package voyage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func TestRerank_Unconfigured(t *testing.T) {
	r := NewReranker(Config{})

	assert.False(t, r.Configured())

	_, err := r.Rerank(context.Background(), "query", []string{"doc"}, 1)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestRerank_EmptyDocuments(t *testing.T) {
	r := NewReranker(Config{APIKey: "test-key"})

	results, err := r.Rerank(context.Background(), "query", nil, 5)

	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestRerank_MapsScoresAndDocuments(t *testing.T) {
	var gotReq rerankRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rerank", r.URL.Path)

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(data, &gotReq))

		io.WriteString(w, `{"data":[
			{"index":2,"relevance_score":0.92},
			{"index":0,"relevance_score":0.41}
		]}`)
	}))
	defer server.Close()

	r := NewReranker(Config{APIKey: "test-key", BaseURL: server.URL})

	documents := []string{"alpha", "beta", "gamma"}
	results, err := r.Rerank(context.Background(), "find gamma", documents, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].Index)
	assert.Equal(t, "gamma", results[0].Document)
	assert.Equal(t, 0.92, results[0].RelevanceScore)
	assert.Equal(t, "alpha", results[1].Document)

	assert.Equal(t, "find gamma", gotReq.Query)
	assert.Equal(t, 2, gotReq.TopK)
	assert.Equal(t, DefaultModel, gotReq.Model)
}

func TestRerank_ClampsTopK(t *testing.T) {
	var gotReq rerankRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(data, &gotReq))
		io.WriteString(w, `{"data":[]}`)
	}))
	defer server.Close()

	r := NewReranker(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := r.Rerank(context.Background(), "query", []string{"a", "b"}, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, gotReq.TopK)
}

func TestRerank_IndexOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"data":[{"index":5,"relevance_score":0.9}]}`)
	}))
	defer server.Close()

	r := NewReranker(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := r.Rerank(context.Background(), "query", []string{"only"}, 1)

	assert.Error(t, err)
}
