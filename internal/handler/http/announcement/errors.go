package announcement

import (
	"errors"
	"net/http"

	"announce-feed/internal/domain/entity"
	"announce-feed/internal/handler/http/auth"
	"announce-feed/internal/handler/http/pathutil"
	"announce-feed/internal/handler/http/respond"
	annUC "announce-feed/internal/usecase/announcement"
)

var errMissingIdentity = errors.New("unauthorized: missing identity")

// writeError maps use case errors onto status codes.
func writeError(w http.ResponseWriter, err error) {
	if respond.ValidationFailed(w, err) {
		return
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, entity.ErrInvalidTransition), errors.Is(err, entity.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, annUC.ErrAnnouncementNotFound), errors.Is(err, entity.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, annUC.ErrInvalidAnnouncementID), errors.Is(err, pathutil.ErrInvalidID):
		code = http.StatusBadRequest
	case errors.Is(err, annUC.ErrOwnerRequired):
		code = http.StatusUnauthorized
	}
	respond.SafeError(w, code, err)
}

// owner returns the authenticated subject, writing a 401 when there is none.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.UserFromContext(r.Context())
	if !ok || id.Subject == "" {
		respond.SafeError(w, http.StatusUnauthorized, errMissingIdentity)
		return "", false
	}
	return id.Subject, true
}

// target resolves the owner and the {id} path value.
func target(w http.ResponseWriter, r *http.Request) (ownerID, id string, ok bool) {
	ownerID, ok = owner(w, r)
	if !ok {
		return "", "", false
	}
	id, err := pathutil.ExtractID(r, "id")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return "", "", false
	}
	return ownerID, id, true
}
