package pace

import "errors"

// Sentinel error kinds for this package.
var (
	ErrBadPace = errors.New("invalid pace inputs")
	ErrBadUnit = errors.New("unknown pace unit")
)
