package correlationid

import "github.com/google/uuid"

const (
	// MaxLength is the length of a canonical hyphenated UUID. Longer candidates
	// are rejected before any parsing happens.
	MaxLength = 36

	hexLength = 32
)

// Validator decides whether an incoming identifier is well formed.
type Validator interface {
	Valid(candidate string) bool
}

// ValidatorFunc adapts a plain predicate to the Validator interface.
type ValidatorFunc func(candidate string) bool

// Valid calls f(candidate).
func (f ValidatorFunc) Valid(candidate string) bool { return f(candidate) }

// UUIDValidator accepts UUIDs in the hyphenated 8-4-4-4-12 form or as 32 hex
// characters, case-insensitively. Only the shape is checked: any version and
// variant passes, including the nil and max UUIDs.
func UUIDValidator() Validator {
	return ValidatorFunc(IsUUID)
}

// IsUUID reports whether s is a hyphenated or unseparated hex UUID.
func IsUUID(s string) bool {
	if s == "" || len(s) > MaxLength {
		return false
	}
	// uuid.Parse also understands braced and URN forms; those are not accepted here.
	if len(s) != MaxLength && len(s) != hexLength {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
