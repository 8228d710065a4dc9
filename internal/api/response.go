package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/aradaa/internal/ordering"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// envelope wraps every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// jsonResponse writes a successful JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Error: message})
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(target)
}

// orderingError maps an ordering or store failure to a response. what names
// the thing being operated on, e.g. "service".
func orderingError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, ordering.ErrNotFound):
		jsonError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, ordering.ErrInvalidDirection), errors.Is(err, ordering.ErrInvalidOrder):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("ordering operation failed", "target", what, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update "+what)
	}
}
