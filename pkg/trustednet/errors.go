package trustednet

import "errors"

var (
	// ErrEmptySource is returned when a trusted source entry is empty or whitespace.
	ErrEmptySource = errors.New("trustednet: trusted source must not be empty")

	// ErrInvalidSource is returned when an entry is neither an IP address nor CIDR notation.
	ErrInvalidSource = errors.New("trustednet: invalid IP address or CIDR notation")

	// ErrHostBitsSet is returned for CIDR entries that are not canonical network addresses.
	ErrHostBitsSet = errors.New("trustednet: CIDR notation has host bits set")
)
