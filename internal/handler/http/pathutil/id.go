package pathutil

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// ExtractID returns the canonical form of the {name} path value registered
// on the route, e.g. "GET /v1/announcements/{id}".
//
// Example:
//
//	id, err := ExtractID(r, "id")
//	// "/v1/announcements/3F2504E0-4F89-11D3-9A0C-0305E82C3301" → "3f2504e0-4f89-11d3-9a0c-0305e82c3301", nil
func ExtractID(r *http.Request, name string) (string, error) {
	return ParseID(r.PathValue(name))
}

// ParseID validates raw as a UUID and returns it lower-cased.
func ParseID(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}
