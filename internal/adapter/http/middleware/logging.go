package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// LoggingMiddleware writes one access log line per request. 5xx responses
// log at error level and 4xx at warn.
type LoggingMiddleware struct {
	logger zerolog.Logger
}

func NewLoggingMiddleware(logger zerolog.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := zerolog.InfoLevel
		if rec.statusCode >= 500 {
			level = zerolog.ErrorLevel
		} else if rec.statusCode >= 400 {
			level = zerolog.WarnLevel
		}

		event := m.logger.WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.statusCode).
			Int("bytes", rec.written).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr)
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			event = event.Str("route", rctx.RoutePattern())
		}
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			event = event.Str("request_id", reqID)
		}
		event.Msg("request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter

	statusCode int
	written    int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}
