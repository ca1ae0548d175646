package announcement

import (
	"net/http"

	"announce-feed/internal/handler/http/respond"
	annUC "announce-feed/internal/usecase/announcement"
)

type GetHandler struct{ Svc *annUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := target(w, r)
	if !ok {
		return
	}
	a, err := h.Svc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
