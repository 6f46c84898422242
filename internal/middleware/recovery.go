package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"dataroom/internal/domain"
	"dataroom/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. It runs inside
// RequestLogger so the failure is logged under the request's id.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// Let net/http handle its own abort sentinel
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"request_id", httputil.GetRequestID(r),
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, domain.UserMessage(nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
