package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"announce-feed/pkg/config"
)

// IPExtractor returns the client IP of a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address, which clients cannot spoof.
type RemoteAddrExtractor struct{}

func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers are believed.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr is inside one of the trusted ranges.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadTrustedProxyConfig reads RATE_LIMIT_TRUST_PROXY and the comma separated
// RATE_LIMIT_TRUSTED_PROXIES (IPs or CIDRs). Enabling trust without a valid
// proxy list is an error.
func LoadTrustedProxyConfig() (TrustedProxyConfig, error) {
	cfg := TrustedProxyConfig{Enabled: config.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false)}
	if !cfg.Enabled {
		return cfg, nil
	}

	proxies := config.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil)
	if len(proxies) == 0 {
		return TrustedProxyConfig{}, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}
	for _, p := range proxies {
		prefix, err := parsePrefix(p)
		if err != nil {
			return TrustedProxyConfig{}, err
		}
		cfg.AllowedCIDRs = append(cfg.AllowedCIDRs, prefix)
	}
	return cfg, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix.Masked(), nil
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid IP or CIDR %q in RATE_LIMIT_TRUSTED_PROXIES", s)
	}
	return netip.PrefixFrom(ip, ip.BitLen()), nil
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when
// the peer is a trusted proxy. Everyone else is identified by RemoteAddr.
type TrustedProxyExtractor struct {
	cfg TrustedProxyConfig
}

func NewTrustedProxyExtractor(cfg TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{cfg: cfg}
}

func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.cfg.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}
	if !e.cfg.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if ip := parseFirstIP(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip, nil
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// NewIPExtractor picks the extractor matching cfg.
func NewIPExtractor(cfg TrustedProxyConfig) IPExtractor {
	if cfg.Enabled {
		return NewTrustedProxyExtractor(cfg)
	}
	return RemoteAddrExtractor{}
}

// extractIPFromAddr accepts "ip:port", "[v6]:port" or a bare IP.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the client entry of an X-Forwarded-For list, or "".
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}
