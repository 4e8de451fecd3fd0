package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameRegex ensures the name contains only valid characters
var nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-'\.]+$`)

var titleCaser = cases.Title(language.English)

// Name represents a person's name part (first or last name)
type Name struct {
	value string
}

// NewName creates a new Name value object with validation. The value is
// title-cased so "aLICE" and "Alice" persist identically.
func NewName(value string) (*Name, error) {
	normalized := strings.TrimSpace(value)

	if normalized == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	if len(normalized) > 100 {
		return nil, fmt.Errorf("name cannot exceed 100 characters")
	}

	if !nameRegex.MatchString(normalized) {
		return nil, fmt.Errorf("name contains invalid characters: %s", value)
	}

	if strings.Contains(normalized, "  ") {
		return nil, fmt.Errorf("name cannot contain consecutive spaces")
	}

	return &Name{value: titleCaser.String(normalized)}, nil
}

// String returns the string representation of the name
func (n *Name) String() string {
	return n.value
}

// Equals checks if two name objects are equal
func (n *Name) Equals(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	return strings.EqualFold(n.value, other.value)
}
