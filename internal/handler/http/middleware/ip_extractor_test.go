package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIPFromAddr(t *testing.T) {
	tests := map[string]string{
		"192.168.1.1:8080":   "192.168.1.1",
		"[2001:db8::1]:8080": "2001:db8::1",
		"127.0.0.1":          "127.0.0.1",
		"[::1]":              "::1",
	}
	for in, want := range tests {
		got, err := extractIPFromAddr(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := extractIPFromAddr("not-an-ip")
	assert.Error(t, err)
}

func TestTrustedProxyExtractor(t *testing.T) {
	cfg := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}
	e := NewTrustedProxyExtractor(cfg)

	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{name: "trusted proxy with xff", remote: "10.1.2.3:443", xff: "203.0.113.7, 10.1.2.3", want: "203.0.113.7"},
		{name: "trusted proxy with x-real-ip", remote: "10.1.2.3:443", xri: "203.0.113.8", want: "203.0.113.8"},
		{name: "trusted proxy without headers", remote: "10.1.2.3:443", want: "10.1.2.3"},
		{name: "spoofed header from untrusted peer", remote: "198.51.100.1:5000", xff: "1.1.1.1", want: "198.51.100.1"},
		{name: "garbage xff falls back", remote: "10.1.2.3:443", xff: "garbage", want: "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			got, err := e.ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "")
		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.IsType(t, RemoteAddrExtractor{}, NewIPExtractor(cfg))
	})

	t.Run("single ip and cidr", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "192.168.1.1, 2001:db8::/32")
		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		require.Len(t, cfg.AllowedCIDRs, 2)
		assert.True(t, cfg.IsTrusted("192.168.1.1:80"))
		assert.False(t, cfg.IsTrusted("192.168.1.2:80"))
		assert.True(t, cfg.IsTrusted("[2001:db8::5]:80"))
	})

	t.Run("enabled without proxies", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "")
		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})

	t.Run("invalid entry", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8,nope")
		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})
}
