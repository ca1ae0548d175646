package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"announce-feed/internal/handler/http/respond"
	authservice "announce-feed/internal/service/auth"
)

type ctxKey string

const ctxUser ctxKey = "user"

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(token string) (authservice.Identity, error)
}

// Authz requires a valid bearer token on every non-public endpoint and checks
// the role against RolePermissions. The verified identity is stored in the
// request context; its subject is the owner of the announcements touched by
// the request.
func Authz(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			id, err := verifyBearer(v, r.Header.Get("Authorization"))
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}
			allowed := checkRolePermission(id.Role, r.Method, r.URL.Path)
			RecordAuthzCheckDuration(time.Since(start).Seconds())
			if !allowed {
				RecordForbiddenAttempt(id.Role, r.Method)
				respond.SafeError(w, http.StatusForbidden, errors.New("forbidden"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), id)))
		})
	}
}

func verifyBearer(v Verifier, header string) (authservice.Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return authservice.Identity{}, errors.New("missing bearer token")
	}
	id, err := v.Verify(strings.TrimPrefix(header, prefix))
	if err != nil {
		return authservice.Identity{}, errors.New("invalid token")
	}
	return id, nil
}

// WithUser returns a context carrying id.
func WithUser(ctx context.Context, id authservice.Identity) context.Context {
	return context.WithValue(ctx, ctxUser, id)
}

// UserFromContext returns the identity stored by Authz.
func UserFromContext(ctx context.Context) (authservice.Identity, bool) {
	id, ok := ctx.Value(ctxUser).(authservice.Identity)
	return id, ok && id.Subject != ""
}
