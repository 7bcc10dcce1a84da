package homie

import (
	"fmt"
)

// Validates that an ID conforms to the Homie standard.
// Attribute ids ("$name") are allowed when attr is set.
func validateID(inputId string, attr bool) error {
	if len(inputId) < 1 {
		return fmt.Errorf("invalid use of null identifier")
	}

	bytes := []byte(inputId)

	if bytes[0] == '-' {
		return fmt.Errorf("identifier %q may not begin with '-'", inputId)
	}

	for i, b := range bytes {
		if (b < 'a' || b > 'z') &&
			(b < '0' || b > '9') &&
			(i != 0 || b != '$' || !attr) &&
			b != '-' {
			return fmt.Errorf("invalid character %q (%d) in identifier %q", b, b, inputId)
		}
	}

	return nil
}

// ValidID reports whether id may be used as a device, node or property id.
func ValidID(id string) bool {
	return validateID(id, false) == nil
}
