package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService runs the upload pipeline:
// validate -> parse -> chunk -> embed -> store.
type IngestionService struct {
	parser            driven.Parser
	chunker           driven.Chunker
	embedder          driven.EmbeddingService
	store             driven.VectorStore
	maxFileSize       int64
	allowedExtensions []string
}

// NewIngestionService creates a new ingestion service. maxFileSizeMB and
// allowedExtensions bound upload validation.
func NewIngestionService(
	parser driven.Parser,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	maxFileSizeMB int,
	allowedExtensions []string,
) *IngestionService {
	return &IngestionService{
		parser:            parser,
		chunker:           chunker,
		embedder:          embedder,
		store:             store,
		maxFileSize:       int64(maxFileSizeMB) * 1024 * 1024,
		allowedExtensions: allowedExtensions,
	}
}

// Upload validates, parses, chunks, embeds, and stores a document.
// Validation failures are client errors; anything after validation that
// fails surfaces as a processing error. There is no rollback of points
// upserted before a mid-pipeline failure.
func (s *IngestionService) Upload(ctx context.Context, filename string, content []byte) (domain.UploadReceipt, error) {
	logger.Section("Document Upload")

	ext, err := s.validate(filename, content)
	if err != nil {
		return domain.UploadReceipt{}, err
	}

	logger.Info("Parsing document: %s", filename)
	text, err := s.parser.Parse(ctx, content, filename)
	if err != nil {
		return domain.UploadReceipt{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.UploadReceipt{}, fmt.Errorf("%w: no text could be extracted from the document", domain.ErrEmptyDocument)
	}

	logger.Info("Chunking text")
	chunks, err := s.chunker.Chunk(text)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("chunking failed: %w", err)
	}
	if len(chunks) == 0 {
		return domain.UploadReceipt{}, fmt.Errorf("%w: document produced no valid chunks", domain.ErrEmptyDocument)
	}

	logger.Info("Generating embeddings for %d chunks", len(chunks))
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("embedding failed: %w", err)
	}

	if err := s.store.EnsureCollection(ctx); err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("ensure collection: %w", err)
	}

	logger.Info("Storing chunks in vector database")
	documentID, err := s.store.StoreChunks(ctx, chunks, embeddings, filename, ext)
	if err != nil {
		return domain.UploadReceipt{}, fmt.Errorf("store chunks: %w", err)
	}

	logger.Info("Successfully processed document %s", documentID)
	return domain.UploadReceipt{
		DocumentID:  documentID,
		Filename:    filename,
		TotalChunks: len(chunks),
	}, nil
}

// List returns the stored documents.
func (s *IngestionService) List(ctx context.Context) ([]domain.DocumentInfo, error) {
	if err := s.store.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("ensure collection: %w", err)
	}
	return s.store.ListDocuments(ctx)
}

// Delete removes a document and all its chunks.
func (s *IngestionService) Delete(ctx context.Context, documentID string) (int, error) {
	deleted, err := s.store.DeleteDocument(ctx, documentID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}
	return deleted, nil
}

// validate checks the filename extension, emptiness, and size before any
// parsing happens. It returns the lowercased extension.
func (s *IngestionService) validate(filename string, content []byte) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extensionAllowed(ext) {
		return "", fmt.Errorf("%w: %s (allowed: %s)",
			domain.ErrUnsupportedType, ext, strings.Join(s.allowedExtensions, ", "))
	}

	if len(content) == 0 {
		return "", fmt.Errorf("%w: uploaded file is empty", domain.ErrEmptyDocument)
	}
	if int64(len(content)) > s.maxFileSize {
		return "", fmt.Errorf("%w: file exceeds maximum size of %dMB",
			domain.ErrFileTooLarge, s.maxFileSize/(1024*1024))
	}

	return ext, nil
}

func (s *IngestionService) extensionAllowed(ext string) bool {
	for _, allowed := range s.allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
