package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/store-ratings/internal/auth"
	"github.com/baharkarakas/store-ratings/internal/services"
	"github.com/baharkarakas/store-ratings/internal/validate"
)

const maxBodyBytes = 1 << 20

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// DecodeJSON reads a single JSON object from the request body.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func WriteBadRequest(w http.ResponseWriter) {
	WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
}

// WriteServiceError maps the service error taxonomy onto status codes.
// Unrecognized errors are logged and reported as a bare 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var fields validate.Errs
	switch {
	case errors.As(err, &fields):
		WriteError(w, http.StatusBadRequest, "validation_error", "Invalid input", fields)
	case errors.Is(err, services.ErrValidation):
		WriteError(w, http.StatusBadRequest, "validation_error", "Invalid input", nil)
	case errors.Is(err, services.ErrConflict):
		WriteError(w, http.StatusBadRequest, "conflict", "Email already exists", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		WriteError(w, http.StatusBadRequest, "invalid_credentials", "Invalid credentials", nil)
	case errors.Is(err, services.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "Not found", nil)
	case errors.Is(err, auth.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
	case errors.Is(err, auth.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "insufficient role", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed", "err", err, "path", r.URL.Path, "request_id", w.Header().Get("X-Request-Id"))
		WriteError(w, http.StatusInternalServerError, "internal_error", "Server error", nil)
	}
}
