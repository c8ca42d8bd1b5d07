// Package httpapi exposes the document question-answering services over a
// JSON REST API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Version is reported by the root and health endpoints.
const Version = "1.0.0"

// Ports holds the driving-side services the API is built on.
type Ports struct {
	Ingestion driving.IngestionService
	Query     driving.QueryService
	Health    driving.HealthService
}

// Server is the REST server for docqa.
type Server struct {
	ports          *Ports
	mux            *http.ServeMux
	maxUploadBytes int64
}

// NewServer creates a REST server. maxUploadMB bounds the request body of
// the upload endpoint.
func NewServer(ports *Ports, maxUploadMB int) *Server {
	if maxUploadMB <= 0 {
		maxUploadMB = 50
	}

	s := &Server{
		ports:          ports,
		mux:            http.NewServeMux(),
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /documents/upload", s.handleUpload)
	s.mux.HandleFunc("GET /documents", s.handleListDocuments)
	s.mux.HandleFunc("DELETE /documents/{id}", s.handleDeleteDocument)
	s.mux.HandleFunc("POST /query", s.handleQuery)
}

// Handler returns the root HTTP handler, exported for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the REST server on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("Listening on %s", addr)

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

type rootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{
		Name:    "docqa",
		Version: Version,
		Docs:    "/documents",
		Health:  "/health",
	})
}

type healthResponse struct {
	Status           string `json:"status"`
	QdrantConnected  bool   `json:"qdrant_connected"`
	VoyageConfigured bool   `json:"voyage_configured"`
	GeminiConfigured bool   `json:"gemini_configured"`
	Version          string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.ports.Health.Status(r.Context())

	writeJSON(w, http.StatusOK, healthResponse{
		Status:           status.Status,
		QdrantConnected:  status.QdrantConnected,
		VoyageConfigured: status.VoyageConfigured,
		GeminiConfigured: status.GeminiConfigured,
		Version:          status.Version,
	})
}
