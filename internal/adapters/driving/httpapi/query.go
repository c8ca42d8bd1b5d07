package httpapi

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	maxQuestionLength = 2000
	maxTopK           = 20
)

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type sourceEntry struct {
	DocumentID     string  `json:"document_id"`
	Filename       string  `json:"filename"`
	ChunkIndex     int     `json:"chunk_index"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

type queryResponse struct {
	Answer           string        `json:"answer"`
	Sources          []sourceEntry `json:"sources"`
	Query            string        `json:"query"`
	ProcessingTimeMS float64       `json:"processing_time_ms"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeValidationError(w, "reading request body")
		return
	}

	var req queryRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeValidationError(w, "request body must be JSON")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeValidationError(w, "question is required")
		return
	}
	if len(question) > maxQuestionLength {
		writeValidationError(w, "question exceeds 2000 characters")
		return
	}
	if req.TopK < 0 || req.TopK > maxTopK {
		writeValidationError(w, "top_k must be between 1 and 20")
		return
	}

	result, err := s.ports.Query.Ask(r.Context(), question, req.TopK)
	if err != nil {
		writeError(w, err)
		return
	}

	sources := make([]sourceEntry, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, sourceEntry{
			DocumentID:     src.DocumentID,
			Filename:       src.Filename,
			ChunkIndex:     src.ChunkIndex,
			Content:        src.Content,
			RelevanceScore: src.RelevanceScore,
		})
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:           result.Answer,
		Sources:          sources,
		Query:            result.Query,
		ProcessingTimeMS: float64(result.ProcessingTime) / float64(time.Millisecond),
	})
}
