// Package respond writes JSON responses and turns errors into messages that
// are safe to show to API clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"announce-feed/internal/domain/entity"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// safeErrors are substrings of messages that may be returned to clients.
var safeErrors = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"must not",
	"cannot be",
	"unauthorized",
	"forbidden",
	"too many requests",
}

// SafeError returns messages of known client errors as-is. Anything else,
// and every 5xx, is logged with secrets masked and answered with
// "internal server error".
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, safe := range safeErrors {
		if strings.Contains(lowerMsg, safe) {
			isSafe = true
			break
		}
	}
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

// ValidationBody is the 422 response listing every failing field.
type ValidationBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// ValidationFailed writes a 422 with the per-field messages carried by err.
// It reports false, writing nothing, when err is not a validation error.
func ValidationFailed(w http.ResponseWriter, err error) bool {
	fields := entity.ValidationErrors{}
	fields.Merge(err)
	if len(fields) == 0 {
		return false
	}
	JSON(w, http.StatusUnprocessableEntity, ValidationBody{
		Error:  entity.ErrValidationFailed.Error(),
		Fields: fields,
	})
	return true
}

// IsValidation reports whether err carries field-level validation messages.
func IsValidation(err error) bool {
	var all entity.ValidationErrors
	var one *entity.ValidationError
	return errors.As(err, &all) || errors.As(err, &one)
}
