package widget_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"announce-feed/pkg/widget"
)

func TestClient_Fetch(t *testing.T) {
	published := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != widget.AnnouncementsPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get(widget.UserIDHeader); got != "acct-1" {
			t.Errorf("user header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a1","title":"Dark mode","content":"<p>x</p>","type":"feature",
			"priority":"high","status":"published","publishedAt":"2026-03-01T10:00:00Z",
			"createdAt":"2026-03-01T09:00:00Z","linkUrl":"https://example.com"}]`))
	}))
	defer srv.Close()

	items, err := widget.NewClient(srv.URL+"/", "acct-1", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)

	want := []widget.Item{{
		ID: "a1", Title: "Dark mode", Content: "<p>x</p>", Type: "feature", Priority: "high",
		Status: "published", PublishedAt: &published,
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		LinkURL:   "https://example.com",
	}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_Fetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
	}))
	defer srv.Close()

	_, err := widget.NewClient(srv.URL, "acct-1", nil).Fetch(context.Background())
	var se *widget.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Code)
	require.Equal(t, "internal server error", se.Message)
}

func TestClient_Fetch_NoRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := widget.NewClient(srv.URL, "acct-1", nil).Fetch(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestClient_Fetch_MissingUser(t *testing.T) {
	_, err := widget.NewClient("http://unused.invalid", "", nil).Fetch(context.Background())
	if !errors.Is(err, widget.ErrUserIDRequired) {
		t.Fatalf("want ErrUserIDRequired, got %v", err)
	}
}

func TestItem_DisplayDate(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pub := created.Add(time.Hour)
	if got := (widget.Item{CreatedAt: created}).DisplayDate(); !got.Equal(created) {
		t.Fatalf("want created, got %v", got)
	}
	if got := (widget.Item{CreatedAt: created, PublishedAt: &pub}).DisplayDate(); !got.Equal(pub) {
		t.Fatalf("want published, got %v", got)
	}
}
