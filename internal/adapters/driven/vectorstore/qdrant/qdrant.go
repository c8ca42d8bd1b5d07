// Package qdrant provides a vector store adapter backed by Qdrant's
// REST API. It assumes cosine distance and creates the collection on
// demand with the configured embedding dimension.
package qdrant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultURL        = "http://localhost:6333"
	DefaultCollection = "documents"
	DefaultTimeout    = 30 * time.Second

	// upsertBatchSize bounds one upsert request.
	upsertBatchSize = 100

	// scrollPageSize is the page size for full-collection scans.
	scrollPageSize = 100
)

// Config holds connection details for a Qdrant vector store.
type Config struct {
	// URL is the Qdrant base URL (default: http://localhost:6333).
	URL string

	// APIKey is sent as the api-key header when non-empty.
	APIKey string

	// Collection is the collection name (default: documents).
	Collection string

	// Dimension is the embedding vector size the collection is created with.
	Dimension int

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store is a REST client to Qdrant.
type Store struct {
	client     *http.Client
	url        string
	apiKey     string
	collection string
	dimension  int
}

// payload is the per-point payload stored alongside each vector.
type payload struct {
	Content     string    `json:"content"`
	DocumentID  string    `json:"document_id"`
	Filename    string    `json:"filename"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	UploadDate  time.Time `json:"upload_date"`
	FileType    string    `json:"file_type"`
}

// point is one upserted record.
type point struct {
	ID      string    `json:"id"`
	Vector  []float32 `json:"vector"`
	Payload payload   `json:"payload"`
}

// documentFilter matches every point of one document.
type documentFilter struct {
	Must []fieldCondition `json:"must"`
}

type fieldCondition struct {
	Key   string     `json:"key"`
	Match matchValue `json:"match"`
}

type matchValue struct {
	Value string `json:"value"`
}

// NewStore creates a Qdrant store client.
func NewStore(cfg Config) *Store {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
	}
}

// EnsureCollection creates the collection if it does not exist.
func (s *Store) EnsureCollection(ctx context.Context) error {
	var listResp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if err := s.do(ctx, http.MethodGet, s.url+"/collections", nil, &listResp); err != nil {
		return err
	}

	for _, c := range listResp.Result.Collections {
		if c.Name == s.collection {
			logger.Debug("Collection exists: %s", s.collection)
			return nil
		}
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	}
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil); err != nil {
		return err
	}

	logger.Info("Created collection: %s", s.collection)
	return nil
}

// StoreChunks upserts one point per chunk and returns the generated
// document ID. Points are upserted in batches; a failure mid-way leaves
// earlier batches in place.
func (s *Store) StoreChunks(ctx context.Context, chunks []domain.TextChunk, embeddings [][]float32, filename, fileType string) (string, error) {
	if len(chunks) != len(embeddings) {
		return "", fmt.Errorf("qdrant: %d chunks but %d embeddings", len(chunks), len(embeddings))
	}

	documentID := uuid.New().String()
	uploadDate := time.Now().UTC()

	points := make([]point, len(chunks))
	for i, chunk := range chunks {
		points[i] = point{
			ID:     uuid.New().String(),
			Vector: embeddings[i],
			Payload: payload{
				Content:     chunk.Content,
				DocumentID:  documentID,
				Filename:    filename,
				ChunkIndex:  chunk.Index,
				TotalChunks: len(chunks),
				UploadDate:  uploadDate,
				FileType:    fileType,
			},
		}
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	for i := 0; i < len(points); i += upsertBatchSize {
		end := i + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}

		body := map[string]any{"points": points[i:end]}
		if err := s.do(ctx, http.MethodPut, url, body, nil); err != nil {
			return "", err
		}
		logger.Debug("Upserted batch %d", i/upsertBatchSize+1)
	}

	logger.Info("Stored %d chunks for document %s", len(chunks), documentID)
	return documentID, nil
}

// Search returns the topK nearest stored chunks to the query vector.
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	var searchResp struct {
		Result []struct {
			Score   float64 `json:"score"`
			Payload payload `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.do(ctx, http.MethodPost, url, body, &searchResp); err != nil {
		return nil, err
	}

	results := make([]domain.ScoredChunk, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		results = append(results, domain.ScoredChunk{
			Content:    r.Payload.Content,
			DocumentID: r.Payload.DocumentID,
			Filename:   r.Payload.Filename,
			ChunkIndex: r.Payload.ChunkIndex,
			Score:      r.Score,
		})
	}
	return results, nil
}

// ListDocuments scrolls the whole collection and aggregates points by
// document ID. O(total chunks) per call.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.DocumentInfo, error) {
	seen := make(map[string]bool)
	var documents []domain.DocumentInfo

	url := fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection)
	var offset any

	for {
		body := map[string]any{
			"limit":        scrollPageSize,
			"with_payload": true,
		}
		if offset != nil {
			body["offset"] = offset
		}

		var scrollResp struct {
			Result struct {
				Points []struct {
					Payload payload `json:"payload"`
				} `json:"points"`
				NextPageOffset any `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.do(ctx, http.MethodPost, url, body, &scrollResp); err != nil {
			return nil, err
		}

		for _, p := range scrollResp.Result.Points {
			if p.Payload.DocumentID == "" || seen[p.Payload.DocumentID] {
				continue
			}
			seen[p.Payload.DocumentID] = true
			documents = append(documents, domain.DocumentInfo{
				DocumentID:  p.Payload.DocumentID,
				Filename:    p.Payload.Filename,
				FileType:    p.Payload.FileType,
				TotalChunks: p.Payload.TotalChunks,
				UploadDate:  p.Payload.UploadDate,
			})
		}

		if scrollResp.Result.NextPageOffset == nil {
			break
		}
		offset = scrollResp.Result.NextPageOffset
	}

	return documents, nil
}

// DeleteDocument removes every chunk of the document and returns the
// number of chunks that were stored for it.
func (s *Store) DeleteDocument(ctx context.Context, documentID string) (int, error) {
	filter := documentFilter{
		Must: []fieldCondition{{
			Key:   "document_id",
			Match: matchValue{Value: documentID},
		}},
	}

	// Count first: the delete API does not report how many points matched.
	var countResp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	countURL := fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection)
	countBody := map[string]any{"filter": filter, "exact": true}
	if err := s.do(ctx, http.MethodPost, countURL, countBody, &countResp); err != nil {
		return 0, err
	}

	deleteURL := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection)
	deleteBody := map[string]any{"filter": filter}
	if err := s.do(ctx, http.MethodPost, deleteURL, deleteBody, nil); err != nil {
		return 0, err
	}

	logger.Info("Deleted %d chunks for document %s", countResp.Result.Count, documentID)
	return countResp.Result.Count, nil
}

// Ping reports whether Qdrant is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.do(ctx, http.MethodGet, s.url+"/collections", nil, nil)
}

// do sends one JSON request and decodes the response into out when
// non-nil. Non-2xx statuses are returned as errors with the response
// body's status text.
func (s *Store) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("qdrant: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("qdrant: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant: %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant: %s %s failed (status %d): %s", method, url, resp.StatusCode, string(respBody))
	}

	if out != nil {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("qdrant: read response: %w", err)
		}
		if err := sonic.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("qdrant: decode response: %w", err)
		}
	}
	return nil
}
