package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fintrack/fintrack-backend/internal/domain"
)

// errorResponse is the uniform error payload
type errorResponse struct {
	Error string `json:"error"`
}

// mapStatus translates the domain error taxonomy into HTTP status codes
func mapStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps the error onto the taxonomy and writes the JSON payload.
// Opaque store failures are reported without their internal detail.
func writeError(w http.ResponseWriter, err error) {
	status := mapStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
