package httpapi

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/logger"
)

type errorResponse struct {
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
	StatusCode int    `json:"status_code"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := sonic.Marshal(body)
	if err != nil {
		logger.Error("Encoding response: %v", err)
		http.Error(w, `{"error":"internal server error","status_code":500}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck
}

// writeError maps domain errors onto HTTP status codes. Validation failures
// surface as 400, oversized uploads as 413, missing documents as 404, and
// everything else as 500 with the detail hidden from the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case domain.IsClientError(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
		writeJSON(w, status, errorResponse{
			Error:      "internal server error",
			StatusCode: status,
		})
		return
	}

	writeJSON(w, status, errorResponse{
		Error:      err.Error(),
		StatusCode: status,
	})
}

// writeValidationError reports a malformed request body as 422 with an
// explicit detail, before any service is invoked.
func writeValidationError(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error:      "validation failed",
		Detail:     detail,
		StatusCode: http.StatusUnprocessableEntity,
	})
}
