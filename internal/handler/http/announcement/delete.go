package announcement

import (
	"log/slog"
	"net/http"

	"announce-feed/internal/observability/logging"
	annUC "announce-feed/internal/usecase/announcement"
)

type DeleteHandler struct {
	Svc    *annUC.Service
	Logger *slog.Logger
}

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := target(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), ownerID, id); err != nil {
		writeError(w, err)
		return
	}
	logging.WithRequestID(r.Context(), h.Logger).Info("announcement deleted", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
