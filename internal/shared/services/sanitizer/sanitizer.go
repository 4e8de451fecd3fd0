// Package sanitizer strips markup from user-supplied plain-text fields
// before they reach the domain layer.
package sanitizer

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Service sanitizes plain-text input. The strict policy removes every HTML
// element and attribute; what remains is unescaped back to plain text.
type Service struct {
	policy *bluemonday.Policy
}

func NewService() *Service {
	return &Service{policy: bluemonday.StrictPolicy()}
}

// Plain returns the input with all markup removed and surrounding
// whitespace trimmed.
func (s *Service) Plain(input string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(input)))
}
