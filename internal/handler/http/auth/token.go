package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"announce-feed/internal/handler/http/requestid"
	"announce-feed/internal/handler/http/respond"
	authservice "announce-feed/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"ownerId"`
	Role    string `json:"role"`
}

// TokenHandler authenticates a login and issues a JWT. The response carries
// the owner id so the account can paste it into the embed configuration.
func TokenHandler(svc *authservice.AuthService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("authentication failed", slog.String("reason", "invalid_request"))
			RecordAuthRequest("unknown", "failure")
			respond.SafeError(w, http.StatusBadRequest, errInvalidRequest)
			return
		}

		token, id, err := svc.Login(r.Context(), authservice.Credentials{
			Username: req.Email,
			Password: req.Password,
		})
		if err != nil {
			log.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			respond.SafeError(w, http.StatusUnauthorized, authservice.ErrInvalidCredentials)
			return
		}

		log.Info("authentication successful",
			slog.String("owner_id", id.Subject),
			slog.String("role", id.Role),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		RecordAuthRequest(id.Role, "success")
		RecordAuthDuration(id.Role, time.Since(start).Seconds())

		respond.JSON(w, http.StatusOK, tokenResponse{Token: token, OwnerID: id.Subject, Role: id.Role})
	}
}
