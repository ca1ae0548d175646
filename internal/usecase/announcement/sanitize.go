package announcement

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// sanitizeContent strips scripts, event handlers and unknown markup from rich-text content.
func sanitizeContent(input string) string {
	value := strings.TrimSpace(input)
	if value == "" {
		return ""
	}
	return getContentPolicy().Sanitize(value)
}

func getContentPolicy() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("p", "br", "pre", "code", "blockquote", "u", "s")
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("p", "span", "pre", "code")
		contentPolicy = policy
	})
	return contentPolicy
}
