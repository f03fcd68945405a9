package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/helixml/csvsplit/application/service"
	"github.com/helixml/csvsplit/domain/split"
	"github.com/helixml/csvsplit/internal/log"
)

// APIError is an error raised by a handler with an explicit HTTP status.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// ErrorObject is a single entry of an error response.
type ErrorObject struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// ErrorResponse wraps error entries.
type ErrorResponse struct {
	Errors []ErrorObject `json:"errors"`
}

// StatusFor maps an error to its HTTP status code and title.
func StatusFor(err error) (int, string) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code(), http.StatusText(apiErr.Code())
	case errors.Is(err, split.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid Argument"
	case errors.Is(err, split.ErrPathDerivation):
		return http.StatusBadRequest, "Path Derivation Error"
	case errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusNotFound, "History Disabled"
	case errors.Is(err, service.ErrClientClosed):
		return http.StatusServiceUnavailable, "Service Unavailable"
	case errors.Is(err, split.ErrIO):
		return http.StatusInternalServerError, "I/O Error"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// WriteError writes an error response whose detail is the error's message.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := StatusFor(err)
	requestID := log.RequestID(r.Context())

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.LogAttrs(r.Context(), level, "request error",
			slog.Int("status", status),
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorResponse{
		Errors: []ErrorObject{{
			Status: fmt.Sprintf("%d", status),
			Title:  title,
			Detail: err.Error(),
			ID:     requestID,
		}},
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
