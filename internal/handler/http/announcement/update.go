package announcement

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	annUC "announce-feed/internal/usecase/announcement"
)

type UpdateHandler struct {
	Svc    *annUC.Service
	Logger *slog.Logger
}

// ServeHTTP applies a partial update; absent fields are left unchanged.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := target(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	in, err := req.input()
	if err != nil {
		writeError(w, err)
		return
	}

	a, err := h.Svc.Update(r.Context(), ownerID, id, in)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Warn("announcement update rejected",
			slog.String("id", id),
			slog.Any("error", err))
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
