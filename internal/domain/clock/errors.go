package clock

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrBadClock marks a string that is not a MM:SS or HH:MM:SS duration.
	ErrBadClock = errors.New("invalid clock duration")
)
