// Package clock parses and renders colon-delimited clock durations.
//
// Two shapes are accepted: MM:SS and HH:MM:SS. Each component must be
// a non-negative integer; anything else is rejected with ErrBadClock
// so callers can drop the offending row instead of failing the load.
package clock

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unavailable is rendered for non-finite second totals.
const Unavailable = "--:--"

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// Parse converts "MM:SS" or "HH:MM:SS" into a total of seconds.
// No days, no fractional seconds, no negative components.
func Parse(s string) (float64, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		m, err := component(parts[0])
		if err != nil {
			return 0, err
		}
		sec, err := component(parts[1])
		if err != nil {
			return 0, err
		}
		return float64(m*secondsPerMinute + sec), nil
	case 3:
		h, err := component(parts[0])
		if err != nil {
			return 0, err
		}
		m, err := component(parts[1])
		if err != nil {
			return 0, err
		}
		sec, err := component(parts[2])
		if err != nil {
			return 0, err
		}
		return float64(h*secondsPerHour + m*secondsPerMinute + sec), nil
	default:
		return 0, fmt.Errorf("%w: %q has %d segments", ErrBadClock, s, len(parts))
	}
}

// component parses a single clock segment as a non-negative integer.
func component(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative segment %q", ErrBadClock, s)
	}
	return v, nil
}

// Format renders a seconds total as "M:SS" with seconds zero-padded
// and minutes unbounded (no hour rollover). Non-finite input renders
// the Unavailable marker rather than panicking.
func Format(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Unavailable
	}
	total := int(math.Round(seconds))
	if total < 0 {
		return Unavailable
	}
	return fmt.Sprintf("%d:%02d", total/secondsPerMinute, total%secondsPerMinute)
}
