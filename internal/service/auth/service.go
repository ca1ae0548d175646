// Package auth implements credential checks and JWT issuance for the admin API.
// It is framework-agnostic; the HTTP layer only extracts bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidCredentials is returned when a login does not match any account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Credentials represents a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Identity is the authenticated principal carried in a token.
// Subject is the account that owns announcements.
type Identity struct {
	Subject string
	Role    string
}

// AuthProvider checks credentials and resolves who a user is.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error
	IdentifyUser(ctx context.Context, username string) (Identity, error)
	Name() string
}

// AuthService signs and verifies HS256 tokens for identities resolved by the provider.
type AuthService struct {
	provider AuthProvider
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a service. A non-positive ttl defaults to one hour.
func NewAuthService(provider AuthProvider, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{provider: provider, secret: secret, ttl: ttl, now: time.Now}
}

// Provider returns the configured provider.
func (s *AuthService) Provider() AuthProvider { return s.provider }

// Login validates creds and returns a signed token for the resolved identity.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (string, Identity, error) {
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return "", Identity{}, fmt.Errorf("Login: %w: %v", ErrInvalidCredentials, err)
	}
	id, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return "", Identity{}, fmt.Errorf("Login: %w: %v", ErrInvalidCredentials, err)
	}
	token, err := s.Issue(id)
	if err != nil {
		return "", Identity{}, err
	}
	return token, id, nil
}

// Issue signs a token for id.
func (s *AuthService) Issue(id Identity) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.Subject,
		"role": id.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("Issue: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the identity it carries.
func (s *AuthService) Verify(tokenString string) (Identity, error) {
	tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Subject: sub, Role: role}, nil
}
