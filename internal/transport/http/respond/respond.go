// Package respond centralizes JSON response writing and the mapping of
// business errors onto HTTP status codes, so handlers never reach into
// apperror themselves.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/models/apperror"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Error maps err onto an HTTP status and writes a {"detail": ...} body.
// Unclassified errors are reported as 500 without leaking their message.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		status = http.StatusNotFound
		detail = err.Error()
	case apperror.KindForbidden:
		status = http.StatusForbidden
		detail = err.Error()
	case apperror.KindConflict,
		apperror.KindInvalid,
		apperror.KindUnavailable,
		apperror.KindInsufficientStock:
		status = http.StatusBadRequest
		detail = err.Error()
	default:
		slog.Error("Unhandled error", "error", err)
	}

	JSON(w, status, errorResponse{Detail: detail})
}
