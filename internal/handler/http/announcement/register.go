// Package announcement serves the authenticated admin API for announcements.
package announcement

import (
	"log/slog"
	"net/http"

	annUC "announce-feed/internal/usecase/announcement"
)

// Register mounts the admin routes. Authentication is applied by the caller's
// middleware chain; each handler reads the owner from the request context.
func Register(mux *http.ServeMux, svc *annUC.Service, logger *slog.Logger) {
	mux.Handle("GET /v1/announcements", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /v1/announcements", CreateHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /v1/announcements/stats", StatsHandler{Svc: svc})
	mux.Handle("GET /v1/announcements/{id}", GetHandler{Svc: svc})
	mux.Handle("PUT /v1/announcements/{id}", UpdateHandler{Svc: svc, Logger: logger})
	mux.Handle("DELETE /v1/announcements/{id}", DeleteHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /v1/announcements/{id}/publish", TransitionHandler{Svc: svc, Action: ActionPublish, Logger: logger})
	mux.Handle("POST /v1/announcements/{id}/archive", TransitionHandler{Svc: svc, Action: ActionArchive, Logger: logger})
	mux.Handle("POST /v1/announcements/{id}/schedule", TransitionHandler{Svc: svc, Action: ActionSchedule, Logger: logger})
}
