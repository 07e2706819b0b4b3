// Package model contains domain models passed between layers.
package model

// RawRow is a single uninterpreted row from a tabular source, keyed by
// header name. Fields beyond the four logical ones are carried along
// but ignored by the sanitizer.
type RawRow map[string]string

// Record is a fully validated race result. Instances are immutable
// once built; aggregations never modify them.
type Record struct {
	Runner         string  // non-empty, trimmed
	Year           int     // parsed, finite
	EventDistance  float64 // miles, > 0
	ElapsedSeconds float64 // total seconds, >= 0
	PaceSeconds    float64 // seconds per mile, finite and >= 0
}
