// Package aggregate derives display views from a validated record set.
//
// Every function here is a pure function of its input slice: no shared
// state, no mutation of the records, and explicit sort keys everywhere
// ordering matters, so repeated runs over the same input produce
// identical output. Safe to call concurrently from multiple readers.
package aggregate

import (
	"sort"

	"github.com/paceline/paceline/internal/domain/model"
)

// Runners returns the distinct runner names in first-seen input order.
func Runners(records []model.Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Runner]; ok {
			continue
		}
		seen[r.Runner] = struct{}{}
		out = append(out, r.Runner)
	}
	return out
}

// Years returns the distinct years in ascending order.
func Years(records []model.Record) []int {
	seen := make(map[int]struct{}, len(records))
	out := make([]int, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	sort.Ints(out)
	return out
}

// paceByRunnerYear collapses duplicate (runner, year) records into a
// single pace with last-write-wins semantics. This is the explicit
// deterministic tie-break for views that need one pace per cell.
func paceByRunnerYear(records []model.Record) map[int]map[string]float64 {
	byYear := make(map[int]map[string]float64)
	for _, r := range records {
		m, ok := byYear[r.Year]
		if !ok {
			m = make(map[string]float64)
			byYear[r.Year] = m
		}
		m[r.Runner] = r.PaceSeconds
	}
	return byYear
}
