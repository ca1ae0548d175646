package announcement

import (
	"log/slog"
	"net/http"

	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	annUC "announce-feed/internal/usecase/announcement"
)

type ListHandler struct {
	Svc    *annUC.Service
	Logger *slog.Logger
}

// ServeHTTP lists the caller's announcements, newest created first.
// ?status=published narrows the list to published items ordered by publishedAt.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	list, err := h.Svc.List(ctx, ownerID)
	if r.URL.Query().Get("status") == "published" {
		list, err = h.Svc.ListPublished(ctx, ownerID)
	}
	if err != nil {
		logging.WithRequestID(ctx, h.Logger).Error("failed to list announcements", slog.Any("error", err))
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}
