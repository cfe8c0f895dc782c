package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/finlab/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"

	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"
)

// storedResponse is what the store keeps for a completed request.
type storedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyMiddleware replays the stored response of a completed request
// with the same Idempotency-Key. Keys are scoped to the authenticated user.
type IdempotencyMiddleware struct {
	store  usecase.IdempotencyStore
	ttl    time.Duration
	logger zerolog.Logger
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration, logger zerolog.Logger) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl, logger: logger}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only apply to mutating requests
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		key := scopedKey(r, header)

		cached, claimed, err := m.store.Claim(r.Context(), key, m.ttl)
		if err != nil {
			m.logger.Error().Err(err).Str("key", key).Msg("idempotency check failed")
			writeError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if !claimed {
			if len(cached) == 0 {
				writeError(w, http.StatusConflict, "a request with this Idempotency-Key is still in progress")
				return
			}
			replay(w, cached)
			return
		}

		// A panicking handler must not leave the key pending until it expires.
		defer func() {
			if rec := recover(); rec != nil {
				m.release(r.Context(), key)
				panic(rec)
			}
		}()

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			m.release(r.Context(), key)
			return
		}

		payload, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()})
		if err == nil {
			err = m.store.Complete(r.Context(), key, payload, m.ttl)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) release(ctx context.Context, key string) {
	if err := m.store.Release(ctx, key); err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

func scopedKey(r *http.Request, key string) string {
	if user, ok := GetUserFromContext(r.Context()); ok {
		return user.ID + ":" + key
	}
	return "anonymous:" + key
}

func replay(w http.ResponseWriter, cached []byte) {
	var stored storedResponse
	if err := json.Unmarshal(cached, &stored); err != nil || stored.Status == 0 {
		stored = storedResponse{Status: http.StatusOK, Body: cached}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(stored.Status)
	w.Write(stored.Body)
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
