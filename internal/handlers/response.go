package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shaibs3/bakery-api/internal/store"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// headers are already sent, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeStoreError maps a store failure onto an HTTP status
func writeStoreError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logger.Warn("store unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		logger.Error("store operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
