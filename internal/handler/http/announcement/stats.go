package announcement

import (
	"net/http"

	"announce-feed/internal/handler/http/respond"
	annUC "announce-feed/internal/usecase/announcement"
)

type StatsHandler struct{ Svc *annUC.Service }

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	st, err := h.Svc.Stats(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	byType := make(map[string]int, len(st.ByType))
	for t, n := range st.ByType {
		byType[string(t)] = n
	}
	respond.JSON(w, http.StatusOK, StatsDTO{
		Total:     st.Total,
		Published: st.Published,
		Scheduled: st.Scheduled,
		Drafts:    st.Drafts,
		Archived:  st.Archived,
		ThisMonth: st.ThisMonth,
		ByType:    byType,
	})
}
