package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/logger"
)

type uploadResponse struct {
	DocumentID  string `json:"document_id"`
	Filename    string `json:"filename"`
	TotalChunks int    `json:"total_chunks"`
	Message     string `json:"message"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrFileTooLarge, s.maxUploadBytes))
			return
		}
		writeError(w, fmt.Errorf("%w: multipart field 'file' is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close() //nolint:errcheck

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: reading upload: %v", domain.ErrInvalidInput, err))
		return
	}

	logger.Info("Upload received: %s (%d bytes)", header.Filename, len(content))

	receipt, err := s.ports.Ingestion.Upload(r.Context(), header.Filename, content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		DocumentID:  receipt.DocumentID,
		Filename:    receipt.Filename,
		TotalChunks: receipt.TotalChunks,
		Message:     fmt.Sprintf("Document processed into %d chunks", receipt.TotalChunks),
	})
}

type documentEntry struct {
	DocumentID  string `json:"document_id"`
	Filename    string `json:"filename"`
	TotalChunks int    `json:"total_chunks"`
	UploadDate  string `json:"upload_date"`
	FileType    string `json:"file_type"`
}

type listResponse struct {
	Documents  []documentEntry `json:"documents"`
	TotalCount int             `json:"total_count"`
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.ports.Ingestion.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	entries := make([]documentEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, documentEntry{
			DocumentID:  d.DocumentID,
			Filename:    d.Filename,
			TotalChunks: d.TotalChunks,
			UploadDate:  d.UploadDate.UTC().Format(time.RFC3339),
			FileType:    d.FileType,
		})
	}

	writeJSON(w, http.StatusOK, listResponse{
		Documents:  entries,
		TotalCount: len(entries),
	})
}

type deleteResponse struct {
	DocumentID    string `json:"document_id"`
	Message       string `json:"message"`
	ChunksDeleted int    `json:"chunks_deleted"`
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("id")

	deleted, err := s.ports.Ingestion.Delete(r.Context(), documentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{
		DocumentID:    documentID,
		Message:       "Document deleted",
		ChunksDeleted: deleted,
	})
}
