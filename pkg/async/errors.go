package async

import "errors"

var (
	ErrTimeout   = errors.New("async: timed out waiting for future")
	ErrNoFutures = errors.New("async: WaitAny called without futures")
	ErrPanic     = errors.New("async: function panicked")
)
