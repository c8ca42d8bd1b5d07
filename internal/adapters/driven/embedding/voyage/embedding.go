// Package voyage provides an embedding service adapter using the
// Voyage AI API.
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

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.voyageai.com/v1"
	DefaultModel      = "voyage-3"
	DefaultDimensions = 1024
	DefaultTimeout    = 60 * time.Second

	// maxBatchSize is Voyage's per-request input limit. Larger document
	// sets are sub-batched, not parallelised.
	maxBatchSize = 128
)

// Input types distinguish indexing from search embeddings.
const (
	inputTypeDocument = "document"
	inputTypeQuery    = "query"
)

// Config holds configuration for the Voyage embedding service.
type Config struct {
	// APIKey is the Voyage AI API key. Empty means not configured.
	APIKey string

	// BaseURL is the API base URL (default: https://api.voyageai.com/v1).
	BaseURL string

	// Model is the embedding model to use (default: voyage-3).
	Model string

	// Dimensions is the vector size the model produces (default: 1024).
	Dimensions int

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// EmbeddingService generates embeddings using the Voyage AI API.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// embeddingRequest is the Voyage API request format.
type embeddingRequest struct {
	Input     []string `json:"input"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type"`
}

// embeddingResponse is the Voyage API response format.
type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Detail string `json:"detail,omitempty"`
}

// NewEmbeddingService creates a new Voyage embedding service.
// A missing API key is not an error here; the service reports itself
// unconfigured and fails on use.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// EmbedDocuments generates embeddings for document chunks, sub-batching
// to respect the provider's per-request input limit.
func (s *EmbeddingService) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	all := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := s.embed(ctx, texts[i:end], inputTypeDocument)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)

		logger.Debug("Processed embedding batch %d", i/maxBatchSize+1)
	}

	return all, nil
}

// EmbedQuery generates the embedding for a search query.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := s.embed(ctx, []string{query}, inputTypeQuery)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("voyage: no embedding returned")
	}
	return embeddings[0], nil
}

func (s *EmbeddingService) embed(ctx context.Context, texts []string, inputType string) ([][]float32, error) {
	if s.apiKey == "" {
		return nil, domain.ErrEmbeddingUnavailable
	}

	jsonBody, err := sonic.Marshal(embeddingRequest{
		Input:     texts,
		Model:     s.model,
		InputType: inputType,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/embeddings",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voyage: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("voyage: read response: %w", err)
	}

	var embedResp embeddingResponse
	if err := sonic.Unmarshal(body, &embedResp); err != nil {
		return nil, fmt.Errorf("voyage: decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if embedResp.Detail != "" {
			return nil, fmt.Errorf("voyage error (status %d): %s", resp.StatusCode, embedResp.Detail)
		}
		return nil, fmt.Errorf("voyage error (status %d): %s", resp.StatusCode, string(body))
	}

	// Order by index: the API may return data out of input order.
	embeddings := make([][]float32, len(texts))
	for _, data := range embedResp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("voyage: embedding index %d out of range", data.Index)
		}
		embeddings[data.Index] = data.Embedding
	}

	logger.Info("Generated %d embeddings using %s", len(embedResp.Data), s.model)
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// Configured reports whether an API key is present.
func (s *EmbeddingService) Configured() bool {
	return s.apiKey != ""
}
