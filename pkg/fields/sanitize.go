package fields

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-remoteform/pkg/lazy"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText cleans user-authored markup out of labels, help texts, and
// choice captions before they cross the wire. Lazy values pass through
// untouched; they resolve (and stay plain strings) during the export's final
// resolution pass.
func sanitizeText(value any) any {
	switch v := value.(type) {
	case string:
		return sanitizeMarkup(v)
	case lazy.Text:
		return v
	case nil:
		return ""
	default:
		return value
	}
}

func sanitizeMarkup(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return helpTextSanitizer().Sanitize(raw)
}

func helpTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "code", "br", "span")
		policy.AllowAttrs("href", "title", "rel", "target").OnElements("a")
		policy.AllowAttrs("class").OnElements("span", "code")
		textPolicy = policy
	})
	return textPolicy
}
