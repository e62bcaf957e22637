package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/service"
	"github.com/phrazzld/library-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
// Anything not recognised is a 500.
func MapErrorToStatusCode(err error) int {
	var vErrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad request errors. Checked first: an unknown author on a book write is
	// the client's mistake even though the author lookup came back empty.
	case errors.As(err, &vErrs),
		errors.Is(err, shared.ErrMalformedBody),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
// Internal error text never reaches the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return shared.MessageUnexpected
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		return shared.MessageUnexpected
	}

	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Invalid %s: %s", vErr.Field, vErr.Message)
	}

	switch {
	case errors.Is(err, shared.ErrMalformedBody):
		return "Malformed request body"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	default:
		return "Invalid request"
	}
}

// HandleAPIError writes the error envelope for err and logs it.
// Handlers call it for every failure instead of choosing a status themselves.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		shared.RespondWithValidationErrors(w, r, fieldErrors(vErrs))
		return
	}

	status := MapErrorToStatusCode(err)

	details := shared.DetailsInternal
	switch status {
	case http.StatusNotFound:
		details = shared.DetailsNotFound
	case http.StatusBadRequest:
		details = shared.DetailsBadRequest
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), details, err)
}

// fieldErrors converts validator output into a field → message map.
func fieldErrors(vErrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg, ok = fieldMessages[fe.Field()]
		}
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out[fe.Field()] = msg
	}
	return out
}
