package announcement

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	annUC "announce-feed/internal/usecase/announcement"
)

// Action is an explicit lifecycle transition requested through the API.
type Action string

const (
	ActionPublish  Action = "publish"
	ActionArchive  Action = "archive"
	ActionSchedule Action = "schedule"
)

type TransitionHandler struct {
	Svc    *annUC.Service
	Action Action
	Logger *slog.Logger
}

func (h TransitionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := target(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var (
		a   *entity.Announcement
		err error
	)
	switch h.Action {
	case ActionPublish:
		a, err = h.Svc.Publish(ctx, ownerID, id)
	case ActionArchive:
		a, err = h.Svc.Archive(ctx, ownerID, id)
	case ActionSchedule:
		var body scheduleBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
			return
		}
		a, err = h.Svc.Schedule(ctx, ownerID, id, body.request())
	default:
		respond.SafeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}
	if err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			logging.WithRequestID(ctx, h.Logger).Info("transition rejected",
				slog.String("id", id),
				slog.String("action", string(h.Action)),
				slog.String("error", err.Error()))
		}
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(a))
}
