package announcement_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"announce-feed/internal/handler/http/announcement"
	"announce-feed/internal/handler/http/auth"
	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/infra/adapter/persistence/sqlite"
	"announce-feed/internal/infra/db"
	authservice "announce-feed/internal/service/auth"
	annUC "announce-feed/internal/usecase/announcement"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	mux *http.ServeMux
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, dialect, err := db.OpenDSN(context.Background(), "sqlite://:memory:", db.DefaultConnectionConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.MigrateUp(conn, dialect))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{mux: http.NewServeMux(), now: now}
	svc := &annUC.Service{
		Repo:   sqlite.NewAnnouncementRepo(conn),
		Now:    func() time.Time { return f.now },
		Logger: logger,
	}
	announcement.Register(f.mux, svc, logger)
	return f
}

// do sends the request as owner; an empty owner sends it unauthenticated.
func (f *fixture) do(t *testing.T, owner, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if owner != "" {
		req = req.WithContext(auth.WithUser(req.Context(), authservice.Identity{Subject: owner, Role: auth.RoleAdmin}))
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func validBody(intent string) map[string]any {
	return map[string]any{
		"title":    "Dark mode",
		"content":  "<p>Dark mode is here</p>",
		"type":     "feature",
		"priority": "high",
		"timezone": "UTC",
		"intent":   intent,
	}
}

func (f *fixture) create(t *testing.T, owner, intent string) announcement.DTO {
	t.Helper()
	rec := f.do(t, owner, http.MethodPost, "/v1/announcements", validBody(intent))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[announcement.DTO](t, rec)
}

func TestCreate_Intents(t *testing.T) {
	f := newFixture(t)

	draft := f.create(t, "owner-1", "save-draft")
	assert.Equal(t, "draft", draft.Status)
	assert.Nil(t, draft.PublishedAt)

	published := f.create(t, "owner-1", "publish-now")
	assert.Equal(t, "published", published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.WithinDuration(t, now, *published.PublishedAt, time.Second)

	body := validBody("schedule")
	body["scheduledDate"] = "2026-03-01"
	body["scheduledTime"] = "10:05"
	rec := f.do(t, "owner-1", http.MethodPost, "/v1/announcements", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	scheduled := decode[announcement.DTO](t, rec)
	assert.Equal(t, "scheduled", scheduled.Status)
	require.NotNil(t, scheduled.ScheduledAt)
	assert.Equal(t, now.Add(5*time.Minute), scheduled.ScheduledAt.UTC())
	assert.Equal(t, "/v1/announcements/"+scheduled.ID, rec.Header().Get("Location"))
}

func TestCreate_ValidationFailure(t *testing.T) {
	f := newFixture(t)

	body := validBody("publish-now")
	body["title"] = "   "
	rec := f.do(t, "owner-1", http.MethodPost, "/v1/announcements", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	got := decode[respond.ValidationBody](t, rec)
	assert.Equal(t, "validation failed", got.Error)
	assert.Equal(t, []string{"title"}, keys(got.Fields))

	list := decode[[]announcement.DTO](t, f.do(t, "owner-1", http.MethodGet, "/v1/announcements", nil))
	assert.Empty(t, list, "nothing may be persisted")
}

func TestCreate_ScheduleTooSoon(t *testing.T) {
	f := newFixture(t)

	body := validBody("schedule")
	body["scheduledDate"] = "2026-03-01"
	body["scheduledTime"] = "10:04"
	rec := f.do(t, "owner-1", http.MethodPost, "/v1/announcements", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[respond.ValidationBody](t, rec).Fields, "scheduledAt")
}

func TestCreate_BadRequests(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, "owner-1", http.MethodPost, "/v1/announcements", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, "owner-1", http.MethodPost, "/v1/announcements", validBody("later"))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[respond.ValidationBody](t, rec).Fields, "intent")

	rec = f.do(t, "", http.MethodPost, "/v1/announcements", validBody("save-draft"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGet(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "owner-1", "save-draft")

	rec := f.do(t, "owner-1", http.MethodGet, "/v1/announcements/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[announcement.DTO](t, rec).ID)

	tests := []struct {
		name  string
		owner string
		path  string
		want  int
	}{
		{"other owner", "owner-2", "/v1/announcements/" + created.ID, http.StatusNotFound},
		{"unknown id", "owner-1", "/v1/announcements/6f1c2b0e-8d7a-4c11-9e55-2a4b1c3d4e5f", http.StatusNotFound},
		{"not a uuid", "owner-1", "/v1/announcements/abc", http.StatusBadRequest},
		{"nil uuid", "owner-1", "/v1/announcements/00000000-0000-0000-0000-000000000000", http.StatusBadRequest},
		{"anonymous", "", "/v1/announcements/" + created.ID, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.do(t, tt.owner, http.MethodGet, tt.path, nil).Code)
		})
	}
}

func TestList_NewestFirstAndPublishedFilter(t *testing.T) {
	f := newFixture(t)
	first := f.create(t, "owner-1", "publish-now")
	f.now = f.now.Add(time.Minute)
	second := f.create(t, "owner-1", "save-draft")
	f.create(t, "owner-2", "publish-now")

	all := decode[[]announcement.DTO](t, f.do(t, "owner-1", http.MethodGet, "/v1/announcements", nil))
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	published := decode[[]announcement.DTO](t, f.do(t, "owner-1", http.MethodGet, "/v1/announcements?status=published", nil))
	require.Len(t, published, 1)
	assert.Equal(t, first.ID, published[0].ID)
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	pub := f.create(t, "owner-1", "publish-now")
	path := "/v1/announcements/" + pub.ID

	rec := f.do(t, "owner-1", http.MethodPut, path, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[announcement.DTO](t, rec)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, pub.PublishedAt.UTC(), got.PublishedAt.UTC(), "field edits keep publishedAt")

	rec = f.do(t, "owner-1", http.MethodPut, path, map[string]any{"status": "draft"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, "owner-1", http.MethodPut, path, map[string]any{"status": "deleted"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[respond.ValidationBody](t, rec).Fields, "status")

	rec = f.do(t, "owner-1", http.MethodPut, path, map[string]any{"linkUrl": "ftp://example.com"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[respond.ValidationBody](t, rec).Fields, "linkUrl")

	rec = f.do(t, "owner-1", http.MethodPut, path, map[string]any{"status": "archived"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "archived", decode[announcement.DTO](t, rec).Status)
}

func TestTransitions(t *testing.T) {
	f := newFixture(t)
	draft := f.create(t, "owner-1", "save-draft")
	base := "/v1/announcements/" + draft.ID

	rec := f.do(t, "owner-1", http.MethodPost, base+"/archive", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "draft cannot be archived")

	rec = f.do(t, "owner-1", http.MethodPost, base+"/schedule", map[string]string{
		"scheduledDate": "2026-03-01", "scheduledTime": "12:00", "timezone": "Europe/Berlin",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scheduled := decode[announcement.DTO](t, rec)
	assert.Equal(t, "scheduled", scheduled.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), scheduled.ScheduledAt.UTC())

	rec = f.do(t, "owner-1", http.MethodPost, base+"/schedule", map[string]string{
		"scheduledDate": "2026-03-02", "scheduledTime": "12:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, "rescheduling is rejected")

	rec = f.do(t, "owner-1", http.MethodPost, base+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "published", decode[announcement.DTO](t, rec).Status)

	rec = f.do(t, "owner-1", http.MethodPost, base+"/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, "owner-1", http.MethodPost, base+"/publish", nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "archived is terminal")
}

func TestSchedule_InvalidBody(t *testing.T) {
	f := newFixture(t)
	draft := f.create(t, "owner-1", "save-draft")

	rec := f.do(t, "owner-1", http.MethodPost, "/v1/announcements/"+draft.ID+"/schedule", "[")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, "owner-1", http.MethodPost, "/v1/announcements/"+draft.ID+"/schedule", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode[respond.ValidationBody](t, rec).Fields
	assert.Contains(t, fields, "scheduledDate")
	assert.Contains(t, fields, "scheduledTime")
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, "owner-1", "save-draft")
	path := "/v1/announcements/" + created.ID

	assert.Equal(t, http.StatusNotFound, f.do(t, "owner-2", http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, "owner-1", http.MethodDelete, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "owner-1", http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, "owner-1", http.MethodDelete, path, nil).Code)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.create(t, "owner-1", "save-draft")
	f.create(t, "owner-1", "publish-now")
	f.create(t, "owner-1", "publish-now")

	rec := f.do(t, "owner-1", http.MethodGet, "/v1/announcements/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[announcement.StatsDTO](t, rec)
	assert.Equal(t, announcement.StatsDTO{
		Total: 3, Published: 2, Drafts: 1, ThisMonth: 3,
		ByType: map[string]int{"feature": 3},
	}, got)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
