package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iho/finlab/internal/adapter/http/dto"
)

// writeError renders middleware rejections in the same JSON shape as the
// handlers.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
