// Package widget serves the public, unauthenticated endpoints the embeddable
// widget reads from. The account is identified by a user id supplied by the
// client, never by a token.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/handler/http/middleware"
	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	"announce-feed/internal/observability/metrics"
	feedwidget "announce-feed/pkg/widget"
)

var errUserIDRequired = errors.New("User ID required")

// Source lists an account's published announcements, newest published first.
type Source interface {
	ListPublished(ctx context.Context, ownerID string) ([]*entity.Announcement, error)
}

// Register mounts the widget routes behind the public CORS policy and, when
// limiter is non-nil, the per-IP rate limit.
func Register(mux *http.ServeMux, src Source, limiter *middleware.IPRateLimiter, logger *slog.Logger) {
	wrap := func(h http.Handler) http.Handler {
		if limiter != nil {
			h = limiter.Middleware(h)
		}
		return middleware.PublicCORS(h)
	}

	list := wrap(ListHandler{Src: src, Logger: logger})
	mux.Handle("GET "+feedwidget.AnnouncementsPath, list)
	mux.Handle("OPTIONS "+feedwidget.AnnouncementsPath, list)

	feed := wrap(FeedHandler{Src: src, Logger: logger})
	mux.Handle("GET "+FeedPath, feed)
	mux.Handle("OPTIONS "+FeedPath, feed)
}

type ListHandler struct {
	Src    Source
	Logger *slog.Logger
}

// ServeHTTP returns the published announcements of the account named by the
// X-User-Id header.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(feedwidget.UserIDHeader))
	if userID == "" {
		metrics.RecordWidgetFetch("announcements", false, 0)
		respond.SafeError(w, http.StatusBadRequest, errUserIDRequired)
		return
	}

	list, err := h.Src.ListPublished(r.Context(), userID)
	if err != nil {
		metrics.RecordWidgetFetch("announcements", false, 0)
		logging.WithRequestID(r.Context(), h.Logger).Error("widget fetch failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	items := toItems(list)
	metrics.RecordWidgetFetch("announcements", true, len(items))
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, http.StatusOK, items)
}

func toItems(list []*entity.Announcement) []feedwidget.Item {
	items := make([]feedwidget.Item, 0, len(list))
	for _, a := range list {
		if a.Status != entity.StatusPublished {
			continue
		}
		items = append(items, feedwidget.Item{
			ID:          a.ID,
			Title:       a.Title,
			Content:     a.Content,
			Type:        string(a.Type),
			Priority:    string(a.Priority),
			Status:      string(a.Status),
			PublishedAt: a.PublishedAt,
			CreatedAt:   a.CreatedAt,
			ImageURL:    a.ImageURL,
			LinkURL:     a.LinkURL,
			LinkText:    a.LinkText,
		})
	}
	return items
}
