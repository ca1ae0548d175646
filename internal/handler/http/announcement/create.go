package announcement

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/handler/http/respond"
	"announce-feed/internal/observability/logging"
	annUC "announce-feed/internal/usecase/announcement"
)

var errInvalidBody = errors.New("invalid request body")

type CreateHandler struct {
	Svc    *annUC.Service
	Logger *slog.Logger
}

// ServeHTTP creates an announcement. The intent field decides whether it is
// saved as a draft, published now or scheduled.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	intent, err := annUC.ParseIntent(req.Intent)
	if err != nil {
		writeError(w, err)
		return
	}

	a, err := h.Svc.Create(r.Context(), ownerID, annUC.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Type:     entity.Type(req.Type),
		Priority: entity.Priority(req.Priority),
		Timezone: req.Timezone,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		LinkText: req.LinkText,
		Intent:   intent,
		Schedule: annUC.ScheduleRequest{
			Date:     req.ScheduledDate,
			Time:     req.ScheduledTime,
			Timezone: req.Timezone,
		},
	})
	if err != nil {
		if !respond.IsValidation(err) {
			logging.WithRequestID(r.Context(), h.Logger).Error("failed to create announcement", slog.Any("error", err))
		}
		writeError(w, err)
		return
	}

	logging.WithRequestID(r.Context(), h.Logger).Info("announcement created",
		slog.String("id", a.ID),
		slog.String("status", string(a.Status)))
	w.Header().Set("Location", "/v1/announcements/"+a.ID)
	respond.JSON(w, http.StatusCreated, toDTO(a))
}
