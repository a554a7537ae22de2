package enums

import "fmt"

// Mode is the storefront context that scopes catalogs and cart lines.
type Mode string

const (
	ModeDelivery  Mode = "delivery"
	ModeWholesale Mode = "wholesale"
)

var validModes = []Mode{
	ModeDelivery,
	ModeWholesale,
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Mode.
func (m Mode) IsValid() bool {
	for _, candidate := range validModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMode converts raw input into a Mode.
func ParseMode(value string) (Mode, error) {
	for _, candidate := range validModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mode %q", value)
}
