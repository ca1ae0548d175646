// Package middleware holds the cross-origin and abuse-control middlewares of
// the API: a whitelist CORS policy for the admin API, a permissive policy for
// the embeddable widget endpoints, client IP extraction and a per-IP limiter.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"announce-feed/pkg/config"
)

// OriginValidator decides whether a cross-origin request is allowed.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	Validator        OriginValidator
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int // seconds
	Logger           *slog.Logger
}

var (
	defaultMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
)

// LoadCORSConfig reads the admin API policy from the environment:
// CORS_ALLOWED_ORIGINS (required, comma separated), CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE.
func LoadCORSConfig(logger *slog.Logger) (*CORSConfig, error) {
	origins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range origins {
		if o == "*" {
			return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must not contain a wildcard")
		}
		u, err := url.Parse(o)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("invalid origin %q in CORS_ALLOWED_ORIGINS", o)
		}
	}

	maxAge := config.GetEnvInt("CORS_MAX_AGE", 86400)
	if maxAge < 0 || maxAge > 86400 {
		return nil, fmt.Errorf("CORS_MAX_AGE must be between 0 and 86400, got %d", maxAge)
	}

	return &CORSConfig{
		Validator:        NewWhitelistValidator(origins),
		AllowedMethods:   config.GetEnvStringList("CORS_ALLOWED_METHODS", defaultMethods),
		AllowedHeaders:   config.GetEnvStringList("CORS_ALLOWED_HEADERS", defaultHeaders),
		AllowCredentials: true,
		MaxAge:           maxAge,
		Logger:           logger,
	}, nil
}

// CORS echoes allowed origins back and answers their preflights with 204.
// Requests from other origins pass through without CORS headers so the
// browser blocks the response.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if cfg.Validator == nil || !cfg.Validator.IsAllowed(origin) {
				if cfg.Logger != nil {
					cfg.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PublicCORSHeaders are the headers a third-party page may send to the widget endpoints.
const PublicCORSHeaders = "authorization, x-client-info, apikey, content-type, x-user-id"

// PublicCORS allows any origin to read the widget endpoints. They carry no
// credentials, so the wildcard is safe. Preflights are answered with 204.
func PublicCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", PublicCORSHeaders)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WhitelistValidator matches origins exactly, ignoring case and a trailing slash.
type WhitelistValidator struct {
	allowed map[string]struct{}
}

// NewWhitelistValidator normalizes origins and drops empty entries.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	v := &WhitelistValidator{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if o = normalizeOrigin(o); o != "" {
			v.allowed[o] = struct{}{}
		}
	}
	return v
}

func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	_, ok := v.allowed[origin]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}
