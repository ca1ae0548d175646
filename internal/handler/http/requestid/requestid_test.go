package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		inbound   string
		wantReuse bool
	}{
		{name: "generates when absent", inbound: "", wantReuse: false},
		{name: "reuses well formed id", inbound: "req-123_abc.DEF", wantReuse: true},
		{name: "replaces id with spaces", inbound: "bad id\nforged=1", wantReuse: false},
		{name: "replaces overlong id", inbound: strings.Repeat("a", 65), wantReuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(RequestIDHeader, tt.inbound)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
			if tt.wantReuse {
				assert.Equal(t, tt.inbound, seen)
				return
			}
			id, err := uuid.Parse(seen)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(7), id.Version())
		})
	}
}

func TestNew_Unique(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		id := New()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
