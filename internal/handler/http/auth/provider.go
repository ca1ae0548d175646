package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"os"

	authservice "announce-feed/internal/service/auth"

	"github.com/google/uuid"
)

var errInvalidRequest = errors.New("invalid request body")

// EnvProvider authenticates the account admin (ADMIN_USER / ADMIN_USER_PASSWORD)
// and an optional read-only viewer (DEMO_USER / DEMO_USER_PASSWORD).
// Both act on the same account: ACCOUNT_ID, or a stable UUID derived from ADMIN_USER.
type EnvProvider struct {
	getenv func(string) string
}

// NewEnvProvider returns a provider reading the process environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{getenv: os.Getenv}
}

func (p *EnvProvider) Name() string { return "env" }

// ValidateCredentials compares in constant time against the configured users.
func (p *EnvProvider) ValidateCredentials(_ context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return errors.New("credentials must not be empty")
	}
	if matches(creds, p.getenv("ADMIN_USER"), p.getenv("ADMIN_USER_PASSWORD")) {
		return nil
	}
	if demo := p.getenv("DEMO_USER"); demo != "" && matches(creds, demo, p.getenv("DEMO_USER_PASSWORD")) {
		return nil
	}
	return errors.New("invalid credentials")
}

// IdentifyUser resolves the role and owning account for username.
func (p *EnvProvider) IdentifyUser(_ context.Context, username string) (authservice.Identity, error) {
	if username == "" {
		return authservice.Identity{}, errors.New("username must not be empty")
	}
	admin := p.getenv("ADMIN_USER")
	switch {
	case constantEqual(username, admin):
		return authservice.Identity{Subject: p.AccountID(), Role: RoleAdmin}, nil
	case p.getenv("DEMO_USER") != "" && constantEqual(username, p.getenv("DEMO_USER")):
		return authservice.Identity{Subject: p.AccountID(), Role: RoleViewer}, nil
	}
	return authservice.Identity{}, fmt.Errorf("user not found")
}

// AccountID returns the owner id used in tokens and widget embeds.
func (p *EnvProvider) AccountID() string {
	if id := p.getenv("ACCOUNT_ID"); id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+p.getenv("ADMIN_USER"))).String()
}

func matches(creds authservice.Credentials, user, pass string) bool {
	if user == "" || pass == "" {
		return false
	}
	u := constantEqual(creds.Username, user)
	pw := constantEqual(creds.Password, pass)
	return u && pw
}

func constantEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
