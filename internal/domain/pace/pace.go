// Package pace normalizes elapsed times into a distance-independent
// pace and converts it between display units.
//
// The canonical internal unit is seconds per mile. Event distances are
// expected to already be expressed in miles; this package performs no
// distance parsing of its own.
package pace

import (
	"fmt"
	"math"
	"strings"
)

// milesToKilometers is the fixed conversion factor between the two
// supported display units.
const milesToKilometers = 1.60934

// Unit tags a pace display unit.
type Unit string

// Supported display units.
const (
	UnitMile      Unit = "mile"
	UnitKilometer Unit = "kilometer"
)

// Normalize computes seconds-per-mile from an elapsed total and an
// event distance in miles. Zero distance or non-finite inputs are
// rejected with ErrBadPace; the result is guaranteed finite and
// non-negative.
func Normalize(elapsedSeconds, eventDistance float64) (float64, error) {
	if math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0) {
		return 0, fmt.Errorf("%w: elapsed seconds not finite", ErrBadPace)
	}
	if math.IsNaN(eventDistance) || math.IsInf(eventDistance, 0) {
		return 0, fmt.Errorf("%w: event distance not finite", ErrBadPace)
	}
	if eventDistance == 0 {
		return 0, fmt.Errorf("%w: zero event distance", ErrBadPace)
	}
	p := elapsedSeconds / eventDistance
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, fmt.Errorf("%w: pace %v", ErrBadPace, p)
	}
	return p, nil
}

// Convert maps a canonical mile-based pace to the requested display
// unit. It is pure and carries no parsing responsibility; it exists so
// the derived per-kilometer value is computed in exactly one place.
func Convert(paceSecondsPerMile float64, unit Unit) float64 {
	if unit == UnitKilometer {
		return paceSecondsPerMile / milesToKilometers
	}
	return paceSecondsPerMile
}

// ParseUnit resolves a query-string unit tag. The empty string maps to
// miles, matching the canonical internal unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mile", "mi":
		return UnitMile, nil
	case "kilometer", "km":
		return UnitKilometer, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadUnit, s)
	}
}
