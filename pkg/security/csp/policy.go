// Package csp builds Content-Security-Policy header values.
package csp

import (
	"slices"
	"strings"
)

const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the rendering order so headers are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// Builder accumulates directives. The zero value is not usable; call New.
type Builder struct {
	directives map[string][]string
	reportOnly bool
}

func New() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// Directive appends sources to name, skipping duplicates. Names outside the
// known set render last, sorted.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	cur := b.directives[name]
	for _, s := range sources {
		if s != "" && !slices.Contains(cur, s) {
			cur = append(cur, s)
		}
	}
	b.directives[name] = cur
	return b
}

func (b *Builder) DefaultSrc(sources ...string) *Builder {
	return b.Directive("default-src", sources...)
}

func (b *Builder) StyleSrc(sources ...string) *Builder { return b.Directive("style-src", sources...) }
func (b *Builder) ImgSrc(sources ...string) *Builder   { return b.Directive("img-src", sources...) }
func (b *Builder) ConnectSrc(sources ...string) *Builder {
	return b.Directive("connect-src", sources...)
}
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	return b.Directive("frame-ancestors", sources...)
}
func (b *Builder) FormAction(sources ...string) *Builder {
	return b.Directive("form-action", sources...)
}
func (b *Builder) BaseURI(sources ...string) *Builder { return b.Directive("base-uri", sources...) }

// ReportURI replaces any previous report endpoint.
func (b *Builder) ReportURI(uri string) *Builder {
	delete(b.directives, "report-uri")
	return b.Directive("report-uri", uri)
}

// ReportOnly switches the header to report-only mode.
func (b *Builder) ReportOnly(enabled bool) *Builder {
	b.reportOnly = enabled
	return b
}

// Build renders the policy, e.g. "default-src 'none'; frame-ancestors 'none'".
func (b *Builder) Build() string {
	parts := make([]string, 0, len(b.directives))
	seen := make(map[string]bool, len(directiveOrder))
	for _, name := range directiveOrder {
		seen[name] = true
		if src := b.directives[name]; len(src) > 0 {
			parts = append(parts, name+" "+strings.Join(src, " "))
		}
	}
	extra := make([]string, 0)
	for name, src := range b.directives {
		if !seen[name] && len(src) > 0 {
			extra = append(extra, name+" "+strings.Join(src, " "))
		}
	}
	slices.Sort(extra)
	return strings.Join(append(parts, extra...), "; ")
}

func (b *Builder) HeaderName() string {
	if b.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy is for JSON responses: nothing may load and nothing may frame them.
func APIPolicy() *Builder {
	return New().
		DefaultSrc("'none'").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'")
}

// FeedPolicy is for the RSS document. Browsers rendering it inline may show
// announcement images, which are hosted anywhere over https.
func FeedPolicy() *Builder {
	return New().
		DefaultSrc("'none'").
		ImgSrc("https:", "data:").
		StyleSrc("'unsafe-inline'").
		FrameAncestors("'none'")
}

// SwaggerUIPolicy is for the bundled API explorer, which inlines its
// bootstrap script and styles.
func SwaggerUIPolicy() *Builder {
	return New().
		DefaultSrc("'self'").
		Directive("script-src", "'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		Directive("font-src", "'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		FormAction("'self'").
		BaseURI("'self'")
}
