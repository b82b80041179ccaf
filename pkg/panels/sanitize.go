package panels

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce     sync.Once
	textPolicy         *bluemonday.Policy
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// MessageHTML turns a plain notification message into markup: every tag is
// stripped and newlines become line breaks.
func MessageHTML(message string) string {
	cleaned := textSanitizer().Sanitize(strings.TrimSpace(message))
	return strings.ReplaceAll(cleaned, "\n", "<br>")
}

// SanitizeFragment restricts rendered region markup to the elements and
// attributes the panel templates use.
func SanitizeFragment(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(fragmentSanitizer().Sanitize(trimmed))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"div", "span", "h5", "h6", "small", "strong", "del", "i", "br", "p",
			"ul", "li", "button", "form", "label", "input", "textarea", "select", "option",
		)
		policy.AllowNoAttrs().OnElements("span", "div", "strong", "small")
		policy.AllowAttrs("class", "id", "title", "role").Globally()
		policy.AllowDataAttributes()
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button", "input")
		policy.AllowAttrs("name").OnElements("textarea", "select")
		policy.AllowAttrs("value", "selected").OnElements("option")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("method").OnElements("form")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
