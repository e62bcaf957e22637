package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/library-api/internal/platform/logger"
	"github.com/phrazzld/library-api/internal/redact"
)

// Details attached to error envelopes, one per status class.
const (
	DetailsNotFound   = "Resource not found in database"
	DetailsBadRequest = "Invalid input provided"
	DetailsInternal   = "Please contact system administrator"

	// MessageUnexpected is the only message a client sees for a 5xx.
	MessageUnexpected = "An unexpected error occurred"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Details   string    `json:"details"`
	TraceID   string    `json:"traceId,omitempty"`
}

// ValidationErrorResponse is returned when request fields fail validation.
// FieldErrors maps each offending JSON field to a human-readable message.
type ValidationErrorResponse struct {
	Timestamp   time.Time         `json:"timestamp"`
	Status      int               `json:"status"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`
	TraceID     string            `json:"traceId,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

// RespondWithErrorAndLog writes an error envelope and logs the detailed error.
// Only message and details reach the client; err is redacted and logged.
//
// Log level strategy:
// - 5xx errors: logged at ERROR level
// - 4xx errors: logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	details string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", message),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Details:   details,
		TraceID:   traceID,
	})
}

// RespondWithValidationErrors writes a 400 validation envelope.
func RespondWithValidationErrors(w http.ResponseWriter, r *http.Request, fieldErrors map[string]string) {
	traceID := GetTraceID(r.Context())

	logger.FromContext(r.Context()).Debug("request validation failed",
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Any("field_errors", fieldErrors))

	RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
		Timestamp:   time.Now().UTC(),
		Status:      http.StatusBadRequest,
		Error:       "Validation Failed",
		Message:     "Input validation failed",
		FieldErrors: fieldErrors,
		TraceID:     traceID,
	})
}
