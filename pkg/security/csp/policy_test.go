package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Order(t *testing.T) {
	got := New().
		FrameAncestors("'none'").
		ImgSrc("https:").
		DefaultSrc("'self'").
		Build()

	assert.Equal(t, "default-src 'self'; img-src https:; frame-ancestors 'none'", got)
}

func TestBuilder_DeduplicatesSources(t *testing.T) {
	got := New().DefaultSrc("'self'", "'self'", "").DefaultSrc("'self'").Build()
	assert.Equal(t, "default-src 'self'", got)
}

func TestBuilder_Empty(t *testing.T) {
	assert.Equal(t, "", New().Build())
}

func TestBuilder_UnknownDirectivesLast(t *testing.T) {
	got := New().
		Directive("worker-src", "'none'").
		Directive("manifest-src", "'self'").
		DefaultSrc("'none'").
		Build()

	assert.Equal(t, "default-src 'none'; manifest-src 'self'; worker-src 'none'", got)
}

func TestBuilder_ReportURIReplaces(t *testing.T) {
	got := New().ReportURI("/a").ReportURI("/b").Build()
	assert.Equal(t, "report-uri /b", got)
}

func TestBuilder_HeaderName(t *testing.T) {
	b := APIPolicy()
	assert.Equal(t, HeaderEnforce, b.HeaderName())
	assert.Equal(t, HeaderReportOnly, b.ReportOnly(true).HeaderName())
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		want string
	}{
		{
			name: "api",
			b:    APIPolicy(),
			want: "default-src 'none'; connect-src 'self'; frame-ancestors 'none'; form-action 'self'; base-uri 'self'",
		},
		{
			name: "feed",
			b:    FeedPolicy(),
			want: "default-src 'none'; style-src 'unsafe-inline'; img-src https: data:; frame-ancestors 'none'",
		},
		{
			name: "swagger ui",
			b:    SwaggerUIPolicy(),
			want: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
				"img-src 'self' data:; font-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; " +
				"form-action 'self'; base-uri 'self'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.b.Build())
		})
	}
}
