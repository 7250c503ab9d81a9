package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeList wraps list data in the pagination envelope clients expect.
func writeList(w http.ResponseWriter, data interface{}, page repository.Page) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       data,
		"pagination": page,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. The
// message carries the requested/available amounts the services embed.
func writeError(w http.ResponseWriter, err error) {
	var (
		ise *domain.InsufficientStockError
		ere *domain.ExcessReturnError
	)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &ise), errors.As(err, &ere), errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPermissionDenied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		logger.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
