package aggregate

import (
	"sort"
	"strings"

	"github.com/paceline/paceline/internal/domain/model"
)

// ComparisonEntry is one runner in a single-year comparison, fastest
// first. ShortName is the first token of the full name, kept for
// compact axis labels.
type ComparisonEntry struct {
	Runner      string  `json:"runner"`
	ShortName   string  `json:"short_name"`
	PaceSeconds float64 `json:"pace_seconds"`
}

// Comparison filters records to the given year and sorts ascending by
// pace. The sort is stable so equal paces keep input order, which
// keeps repeated runs byte-identical.
func Comparison(records []model.Record, year int) []ComparisonEntry {
	entries := make([]ComparisonEntry, 0)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		entries = append(entries, ComparisonEntry{
			Runner:      r.Runner,
			ShortName:   shortName(r.Runner),
			PaceSeconds: r.PaceSeconds,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PaceSeconds < entries[j].PaceSeconds
	})
	return entries
}

// shortName returns the first whitespace-delimited token of a name.
func shortName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}
