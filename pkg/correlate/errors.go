package correlate

import "errors"

// Configuration errors. They are only returned while building a Coordinator,
// never while handling a request.
var (
	ErrEmptyHeaderName = errors.New("correlate: header name must not be empty")
	ErrNilGenerator    = errors.New("correlate: generator must not be nil")
	ErrNilValidator    = errors.New("correlate: validator must not be nil")
	ErrInvalidConfig   = errors.New("correlate: invalid configuration")
)
