package middleware

import (
	"net/http"
	"strings"

	"announce-feed/pkg/config"
	"announce-feed/pkg/security/csp"
)

// CSPConfig selects a policy by longest matching path prefix, falling back
// to Default.
type CSPConfig struct {
	Enabled      bool
	ReportOnly   bool
	Default      *csp.Builder
	PathPolicies map[string]*csp.Builder
}

// LoadCSPConfig reads CSP_ENABLED (default true) and CSP_REPORT_ONLY
// (default false). JSON endpoints get csp.APIPolicy, the RSS feed
// csp.FeedPolicy and /swagger/ csp.SwaggerUIPolicy.
func LoadCSPConfig(feedPath string) CSPConfig {
	return CSPConfig{
		Enabled:    config.GetEnvBool("CSP_ENABLED", true),
		ReportOnly: config.GetEnvBool("CSP_REPORT_ONLY", false),
		Default:    csp.APIPolicy(),
		PathPolicies: map[string]*csp.Builder{
			feedPath:    csp.FeedPolicy(),
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	}
}

type renderedPolicy struct {
	prefix string
	header string
	value  string
}

// CSP sets the Content-Security-Policy header. Policies are rendered once.
func CSP(cfg CSPConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	header := csp.HeaderEnforce
	if cfg.ReportOnly {
		header = csp.HeaderReportOnly
	}
	render := func(prefix string, b *csp.Builder) renderedPolicy {
		if b == nil {
			return renderedPolicy{prefix: prefix}
		}
		return renderedPolicy{prefix: prefix, header: header, value: b.Build()}
	}

	def := render("", cfg.Default)
	paths := make([]renderedPolicy, 0, len(cfg.PathPolicies))
	for prefix, b := range cfg.PathPolicies {
		paths = append(paths, render(prefix, b))
	}

	sel := func(path string) renderedPolicy {
		best := def
		for _, p := range paths {
			if strings.HasPrefix(path, p.prefix) && len(p.prefix) > len(best.prefix) {
				best = p
			}
		}
		return best
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := sel(r.URL.Path); p.value != "" {
				w.Header().Set(p.header, p.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
