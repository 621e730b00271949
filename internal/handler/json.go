package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shiki0x/nymph/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a structured JSON error with a machine-readable
// kind and a human-readable message.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"kind": kind, "message": message},
	})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDomainError maps domain sentinel errors to HTTP responses.
// Validation errors carry their own user-safe message; anything
// unrecognized is logged and reported as an opaque 500 so store
// failures never leak internals.
func writeDomainError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "The requested resource was not found.")
	case errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "duplicate_username", "That username is already taken.")
	case errors.Is(err, domain.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_name", "A habit with that name already exists.")
	case errors.Is(err, domain.ErrInvalidPayload):
		writeError(w, http.StatusBadRequest, "invalid_payload", err.Error())
	case errors.Is(err, domain.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, "invalid_order", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "An unexpected error occurred. Please try again.")
	}
}
