package service

import (
	"errors"
	"log/slog"

	"github.com/phrazzld/library-api/internal/domain"
	"github.com/phrazzld/library-api/internal/store"
)

// logServiceError logs expected failures (missing rows, bad input) at DEBUG
// and everything else at ERROR.
func logServiceError(log *slog.Logger, msg string, err error, attrs ...any) {
	args := append([]any{slog.String("error", err.Error())}, attrs...)
	if store.IsNotFoundError(err) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, domain.ErrValidation) {
		log.Debug(msg, args...)
		return
	}
	log.Error(msg, args...)
}
