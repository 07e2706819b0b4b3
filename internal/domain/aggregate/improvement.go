package aggregate

import (
	"math"
	"sort"

	"github.com/paceline/paceline/internal/domain/model"
)

const percentScale = 100

// Improvement reports one runner's pace gain between two reference
// points. Improvement is previous minus latest, so positive means
// faster. Percent is relative to the previous pace, rounded to one
// decimal.
type Improvement struct {
	Runner      string  `json:"runner"`
	Improvement float64 `json:"improvement_seconds"`
	Percent     float64 `json:"improvement_percent"`
}

// YearOverYear compares the two most recent distinct years. Runners
// present in both years get an entry; only strictly positive
// improvements are retained; decliners are silently excluded, not
// flagged. Fewer than two distinct years yields an empty report.
func YearOverYear(records []model.Record) []Improvement {
	years := Years(records)
	if len(years) < 2 {
		return []Improvement{}
	}
	latest, previous := years[len(years)-1], years[len(years)-2]
	byYear := paceByRunnerYear(records)

	out := make([]Improvement, 0)
	for _, runner := range Runners(records) {
		prevPace, okPrev := byYear[previous][runner]
		latestPace, okLatest := byYear[latest][runner]
		if !okPrev || !okLatest {
			continue
		}
		if imp, ok := improvementBetween(runner, prevPace, latestPace); ok {
			out = append(out, imp)
		}
	}
	sortByMagnitude(out)
	return out
}

// AllTime compares each runner's chronologically first and last record.
// Runners with a single record are excluded entirely. The same
// positive-only retention filter applies.
func AllTime(records []model.Record) []Improvement {
	// Stable sort by year keeps input order within a year, so "first"
	// and "last" are deterministic even with duplicate years.
	chrono := make([]model.Record, len(records))
	copy(chrono, records)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Year < chrono[j].Year
	})

	type span struct {
		first float64
		last  float64
		count int
	}
	spans := make(map[string]*span, len(chrono))
	for _, r := range chrono {
		s, ok := spans[r.Runner]
		if !ok {
			spans[r.Runner] = &span{first: r.PaceSeconds, last: r.PaceSeconds, count: 1}
			continue
		}
		s.last = r.PaceSeconds
		s.count++
	}

	out := make([]Improvement, 0)
	for _, runner := range Runners(records) {
		s := spans[runner]
		if s == nil || s.count < 2 {
			continue
		}
		if imp, ok := improvementBetween(runner, s.first, s.last); ok {
			out = append(out, imp)
		}
	}
	sortByMagnitude(out)
	return out
}

// improvementBetween applies the shared delta/percent formula and the
// positive-only retention rule.
func improvementBetween(runner string, previous, latest float64) (Improvement, bool) {
	delta := previous - latest
	if delta <= 0 {
		return Improvement{}, false
	}
	percent := roundTenth(delta / previous * percentScale)
	return Improvement{Runner: runner, Improvement: delta, Percent: percent}, true
}

// sortByMagnitude orders most improved first; ties break on runner
// name so output stays deterministic.
func sortByMagnitude(imps []Improvement) {
	sort.SliceStable(imps, func(i, j int) bool {
		a, b := math.Abs(imps[i].Improvement), math.Abs(imps[j].Improvement)
		if a != b {
			return a > b
		}
		return imps[i].Runner < imps[j].Runner
	})
}

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
