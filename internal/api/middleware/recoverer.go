package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/library-api/internal/api/shared"
	"github.com/phrazzld/library-api/internal/platform/logger"
)

// NewRecoverer returns middleware that turns a panic in a later handler into
// a 500 with the standard error envelope. Install it after the trace
// middleware so the response and the log line carry the trace ID.
//
// http.ErrAbortHandler is re-raised so net/http can abort the response.
func NewRecoverer(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					// ALLOW-PANIC: net/http handles ErrAbortHandler itself
					panic(rvr)
				}

				logger.FromContextOrDefault(r.Context(), base).Error("recovered from panic",
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())))

				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
					shared.MessageUnexpected, shared.DetailsInternal,
					fmt.Errorf("panic: %v", rvr))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
