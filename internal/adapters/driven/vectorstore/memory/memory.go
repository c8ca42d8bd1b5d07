// Package memory provides an in-memory vector store for tests and local
// development. Search is exact cosine similarity over all stored points.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

type record struct {
	vector      []float32
	content     string
	documentID  string
	filename    string
	chunkIndex  int
	totalChunks int
	uploadDate  time.Time
	fileType    string
}

// Store keeps all points in memory. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	created bool
	points  []record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// EnsureCollection marks the collection as created.
func (s *Store) EnsureCollection(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	return nil
}

// StoreChunks stores one record per chunk and returns a generated
// document ID.
func (s *Store) StoreChunks(_ context.Context, chunks []domain.TextChunk, embeddings [][]float32, filename, fileType string) (string, error) {
	if len(chunks) != len(embeddings) {
		return "", fmt.Errorf("memory: %d chunks but %d embeddings", len(chunks), len(embeddings))
	}

	documentID := uuid.New().String()
	uploadDate := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, chunk := range chunks {
		s.points = append(s.points, record{
			vector:      embeddings[i],
			content:     chunk.Content,
			documentID:  documentID,
			filename:    filename,
			chunkIndex:  chunk.Index,
			totalChunks: len(chunks),
			uploadDate:  uploadDate,
			fileType:    fileType,
		})
	}
	return documentID, nil
}

// Search returns the topK most similar records by cosine similarity.
func (s *Store) Search(_ context.Context, vector []float32, topK int) ([]domain.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.ScoredChunk, 0, len(s.points))
	for _, p := range s.points {
		results = append(results, domain.ScoredChunk{
			Content:    p.content,
			DocumentID: p.documentID,
			Filename:   p.filename,
			ChunkIndex: p.chunkIndex,
			Score:      cosine(vector, p.vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ListDocuments returns the stored documents deduplicated by ID.
func (s *Store) ListDocuments(_ context.Context) ([]domain.DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var documents []domain.DocumentInfo
	for _, p := range s.points {
		if seen[p.documentID] {
			continue
		}
		seen[p.documentID] = true
		documents = append(documents, domain.DocumentInfo{
			DocumentID:  p.documentID,
			Filename:    p.filename,
			FileType:    p.fileType,
			TotalChunks: p.totalChunks,
			UploadDate:  p.uploadDate,
		})
	}
	return documents, nil
}

// DeleteDocument removes every record of the document.
func (s *Store) DeleteDocument(_ context.Context, documentID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.points[:0]
	deleted := 0
	for _, p := range s.points {
		if p.documentID == documentID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	s.points = kept
	return deleted, nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Len returns the number of stored points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
