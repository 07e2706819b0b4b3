// Package sanitize turns raw tabular rows into validated records.
//
// Sanitization is a pure, order-preserving filter-map: a malformed row
// is dropped and counted, never surfaced as an error. Only the caller
// decides whether an empty result set is a dataset-level failure.
package sanitize

import (
	"math"
	"strconv"
	"strings"

	"github.com/paceline/paceline/internal/domain/clock"
	"github.com/paceline/paceline/internal/domain/model"
	"github.com/paceline/paceline/internal/domain/pace"
)

// Default logical field names. Deployments that export different
// headers override these with options.
const (
	defaultRunnerField = "runner"
	defaultYearField   = "year"
	defaultTimeField   = "time"
	defaultEventField  = "event"
)

// Option applies a configuration option to the Sanitizer.
type Option func(*Sanitizer)

// WithRunnerField overrides the header carrying the runner name.
func WithRunnerField(name string) Option {
	return func(s *Sanitizer) {
		if name != "" {
			s.runnerField = name
		}
	}
}

// WithYearField overrides the header carrying the event year.
func WithYearField(name string) Option {
	return func(s *Sanitizer) {
		if name != "" {
			s.yearField = name
		}
	}
}

// WithTimeField overrides the header carrying the clock duration.
// Some exports label this column "pace".
func WithTimeField(name string) Option {
	return func(s *Sanitizer) {
		if name != "" {
			s.timeField = name
		}
	}
}

// WithEventField overrides the header carrying the event distance.
func WithEventField(name string) Option {
	return func(s *Sanitizer) {
		if name != "" {
			s.eventField = name
		}
	}
}

// Stats counts the outcome of one sanitization pass. Rejected rows are
// counted but never itemized.
type Stats struct {
	Total    int
	Accepted int
	Rejected int
}

// Sanitizer validates raw rows against the four logical fields.
type Sanitizer struct {
	runnerField string
	yearField   string
	timeField   string
	eventField  string
}

// New creates a Sanitizer with configuration options.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		runnerField: defaultRunnerField,
		yearField:   defaultYearField,
		timeField:   defaultTimeField,
		eventField:  defaultEventField,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sanitize validates rows independently and in input order. Rows that
// fail any step are skipped; processing never halts on a bad row.
func (s *Sanitizer) Sanitize(rows []model.RawRow) ([]model.Record, Stats) {
	records := make([]model.Record, 0, len(rows))
	stats := Stats{Total: len(rows)}
	for _, row := range rows {
		rec, ok := s.sanitizeRow(row)
		if !ok {
			stats.Rejected++
			continue
		}
		records = append(records, rec)
		stats.Accepted++
	}
	return records, stats
}

// sanitizeRow applies the per-row validation steps. All four logical
// fields must be present and non-empty; year must parse as an integer,
// event as a positive finite distance, and the duration via clock.Parse.
func (s *Sanitizer) sanitizeRow(row model.RawRow) (model.Record, bool) {
	runner := strings.TrimSpace(row[s.runnerField])
	yearRaw := strings.TrimSpace(row[s.yearField])
	timeRaw := strings.TrimSpace(row[s.timeField])
	eventRaw := strings.TrimSpace(row[s.eventField])
	if runner == "" || yearRaw == "" || timeRaw == "" || eventRaw == "" {
		return model.Record{}, false
	}

	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return model.Record{}, false
	}

	// ParseFloat accepts "Inf" and "NaN" spellings, so finiteness is
	// checked explicitly rather than trusting the sign test alone.
	distance, err := strconv.ParseFloat(eventRaw, 64)
	if err != nil || math.IsNaN(distance) || math.IsInf(distance, 0) || distance <= 0 {
		return model.Record{}, false
	}

	elapsed, err := clock.Parse(timeRaw)
	if err != nil {
		return model.Record{}, false
	}

	p, err := pace.Normalize(elapsed, distance)
	if err != nil {
		return model.Record{}, false
	}

	return model.Record{
		Runner:         runner,
		Year:           year,
		EventDistance:  distance,
		ElapsedSeconds: elapsed,
		PaceSeconds:    p,
	}, true
}
