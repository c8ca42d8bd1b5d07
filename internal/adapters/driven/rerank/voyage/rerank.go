// Package voyage provides a reranker adapter using the Voyage AI API.
package voyage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.voyageai.com/v1"
	DefaultModel   = "rerank-2"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Voyage reranker.
type Config struct {
	// APIKey is the Voyage AI API key. Empty means not configured.
	APIKey string

	// BaseURL is the API base URL (default: https://api.voyageai.com/v1).
	BaseURL string

	// Model is the rerank model to use (default: rerank-2).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Reranker scores candidate documents against a query using the
// Voyage AI rerank API.
type Reranker struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// rerankRequest is the Voyage API request format.
type rerankRequest struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	Model     string   `json:"model"`
	TopK      int      `json:"top_k"`
}

// rerankResponse is the Voyage API response format.
type rerankResponse struct {
	Data []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"data"`
	Detail string `json:"detail,omitempty"`
}

// NewReranker creates a new Voyage reranker.
func NewReranker(cfg Config) *Reranker {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Reranker{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Rerank scores documents against the query and returns at most topK
// results ordered by descending relevance.
func (r *Reranker) Rerank(ctx context.Context, query string, documents []string, topK int) ([]driven.RerankResult, error) {
	if len(documents) == 0 {
		return nil, nil
	}
	if r.apiKey == "" {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if topK <= 0 || topK > len(documents) {
		topK = len(documents)
	}

	jsonBody, err := sonic.Marshal(rerankRequest{
		Query:     query,
		Documents: documents,
		Model:     r.model,
		TopK:      topK,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/rerank",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voyage: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voyage: read response: %w", err)
	}

	var rerankResp rerankResponse
	if err := sonic.Unmarshal(body, &rerankResp); err != nil {
		return nil, fmt.Errorf("voyage: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if rerankResp.Detail != "" {
			return nil, fmt.Errorf("voyage error (status %d): %s", resp.StatusCode, rerankResp.Detail)
		}
		return nil, fmt.Errorf("voyage error (status %d): %s", resp.StatusCode, string(body))
	}

	results := make([]driven.RerankResult, 0, len(rerankResp.Data))
	for _, data := range rerankResp.Data {
		if data.Index < 0 || data.Index >= len(documents) {
			return nil, fmt.Errorf("voyage: rerank index %d out of range", data.Index)
		}
		results = append(results, driven.RerankResult{
			Index:          data.Index,
			RelevanceScore: data.RelevanceScore,
			Document:       documents[data.Index],
		})
	}

	logger.Info("Reranked %d documents to top %d using %s", len(documents), len(results), r.model)
	return results, nil
}

// Configured reports whether an API key is present.
func (r *Reranker) Configured() bool {
	return r.apiKey != ""
}
