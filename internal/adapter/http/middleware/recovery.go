package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const panicBody = `{"error":"internal server error","message":"the request could not be completed"}`

// NewRecovery turns a panic in a handler into a 500 JSON response and logs
// it with the stack, request id and user. http.ErrAbortHandler is re-raised.
func NewRecovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				event := logger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("request_id", chimiddleware.GetReqID(r.Context()))
				if user, ok := GetUserFromContext(r.Context()); ok {
					event = event.Str("user_id", user.ID)
				}
				event.Msg("panic recovered")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(panicBody))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
