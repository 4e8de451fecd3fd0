package valueobjects

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneValidator = validator.New()

// MobileNumber represents an E.164 phone number, e.g. "+14155552671".
// WhatsApp delivery requires the number in this exact form.
type MobileNumber struct {
	value string
}

// NewMobileNumber creates a new MobileNumber value object with E.164 validation
func NewMobileNumber(value string) (*MobileNumber, error) {
	normalized := strings.TrimSpace(value)

	if normalized == "" {
		return nil, fmt.Errorf("mobile number cannot be empty")
	}

	if err := phoneValidator.Var(normalized, "e164"); err != nil {
		return nil, fmt.Errorf("mobile number must be in E.164 format: %s", value)
	}

	return &MobileNumber{value: normalized}, nil
}

// String returns the string representation of the mobile number
func (m *MobileNumber) String() string {
	return m.value
}

// Equals checks if two mobile numbers are equal
func (m *MobileNumber) Equals(other *MobileNumber) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.value == other.value
}
