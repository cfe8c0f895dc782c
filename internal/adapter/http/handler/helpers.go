package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/adapter/http/middleware"
	"github.com/iho/finlab/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status code. Internal details are not
// exposed on 5xx responses other than an unavailable assistant.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	status := mapDomainError(err)
	details := err.Error()
	if status == http.StatusInternalServerError || status == http.StatusGatewayTimeout {
		details = ""
	}
	writeError(w, status, message, details)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidOnboarding),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrPasswordTooWeak):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateTransaction),
		errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOnboardingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrAssistantUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// requireUser writes 401 when the request carries no authenticated user.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok || user.ID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return nil, false
	}
	return user, true
}
