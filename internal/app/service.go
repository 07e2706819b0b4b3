// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/paceline/paceline/internal/adapters/ingest"
	"github.com/paceline/paceline/internal/adapters/repository"
	"github.com/paceline/paceline/internal/domain/aggregate"
	"github.com/paceline/paceline/internal/domain/model"
	"github.com/paceline/paceline/internal/domain/pace"
	"github.com/paceline/paceline/internal/domain/sanitize"
	"github.com/paceline/paceline/pkg/logger"
	"github.com/paceline/paceline/pkg/metrics"
)

const defaultMaxUploadBytes = 8 << 20

// Service owns the ingestion pipeline and exposes the derived views.
// Every view accessor recomputes from the current snapshot; views hold
// no state of their own.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	sanitizer *sanitize.Sanitizer

	// Configuration
	dataPath       string
	defaultUnit    pace.Unit
	maxUploadBytes int64
	runnerField    string
	yearField      string
	timeField      string
	eventField     string

	// State
	started bool
	lastErr error

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the bundled results file loaded at startup and on
// reload. Empty disables the bundled source.
func WithDataPath(path string) Option {
	return func(s *Service) {
		s.dataPath = path
	}
}

// WithDefaultUnit sets the pace unit used when a request has none.
func WithDefaultUnit(u pace.Unit) Option {
	return func(s *Service) {
		if u == pace.UnitMile || u == pace.UnitKilometer {
			s.defaultUnit = u
		}
	}
}

// WithMaxUploadBytes bounds uploaded file size.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithFieldNames overrides the headers of the four logical columns.
func WithFieldNames(runner, year, timeField, event string) Option {
	return func(s *Service) {
		if runner != "" {
			s.runnerField = runner
		}
		if year != "" {
			s.yearField = year
		}
		if timeField != "" {
			s.timeField = timeField
		}
		if event != "" {
			s.eventField = event
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultUnit:    pace.UnitMile,
		maxUploadBytes: defaultMaxUploadBytes,
		runnerField:    "runner",
		yearField:      "year",
		timeField:      "time",
		eventField:     "event",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the store and sanitizer and, when a bundled data
// path is configured, kicks off the initial load in the background.
// Ingestion is the only asynchronous stage of the pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemoryStore(ctx)
	s.sanitizer = sanitize.New(
		sanitize.WithRunnerField(s.runnerField),
		sanitize.WithYearField(s.yearField),
		sanitize.WithTimeField(s.timeField),
		sanitize.WithEventField(s.eventField),
	)
	s.started = true

	if s.dataPath != "" {
		path := s.dataPath
		go func() {
			if _, err := s.LoadFromFile(ctx, path); err != nil {
				s.logger.Error(ctx, "initial load failed",
					logger.String("path", path),
					logger.Error(err),
				)
			}
		}()
	}

	s.logger.Info(ctx, "results service started",
		logger.String("data_path", s.dataPath),
		logger.String("default_unit", string(s.defaultUnit)),
	)
	return nil
}

// Stop marks the service stopped. The pipeline holds no goroutines or
// connections of its own; in-flight loads are abandoned via the stale
// token check.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "results service stopped")
}

// MaxUploadBytes reports the configured upload size cap.
func (s *Service) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// DefaultUnit reports the configured display unit.
func (s *Service) DefaultUnit() pace.Unit {
	return s.defaultUnit
}

// LoadFromReader ingests a tabular stream (an upload) in the given
// format, replacing the current dataset on success.
func (s *Service) LoadFromReader(ctx context.Context, r io.Reader, format ingest.Format) (*repository.Snapshot, error) {
	return s.load(ctx, "upload", func() ([]model.RawRow, error) {
		return ingest.Decode(io.LimitReader(r, s.maxUploadBytes), format)
	})
}

// LoadFromFile ingests the tabular file at path.
func (s *Service) LoadFromFile(ctx context.Context, path string) (*repository.Snapshot, error) {
	return s.load(ctx, path, func() ([]model.RawRow, error) {
		return ingest.ReadFile(path)
	})
}

// Reload re-ingests the bundled data path.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	if s.dataPath == "" {
		return nil, ErrNoBundledSource
	}
	return s.LoadFromFile(ctx, s.dataPath)
}

// load runs decode -> sanitize -> commit under a supersede token. A
// failed load never touches the stored snapshot; a stale commit is
// discarded, not merged.
func (s *Service) load(ctx context.Context, source string, decode func() ([]model.RawRow, error)) (*repository.Snapshot, error) {
	start := time.Now()
	token := s.store.Begin(ctx)

	rows, err := decode()
	if err != nil {
		metrics.RecordLoadError("source_unreadable")
		s.setLastError(err)
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	records, stats := s.sanitizer.Sanitize(rows)
	metrics.RecordRowsAccepted(stats.Accepted)
	metrics.RecordRowsRejected(stats.Rejected)
	if len(records) == 0 {
		metrics.RecordLoadError("no_valid_rows")
		err := fmt.Errorf("%w: %d rows read from %s", ErrNoValidRows, stats.Total, source)
		s.setLastError(err)
		return nil, err
	}

	snap := &repository.Snapshot{
		LoadID:   uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Records:  records,
		Runners:  aggregate.Runners(records),
		Years:    aggregate.Years(records),
		Stats:    stats,
	}
	if !s.store.Replace(ctx, token, snap) {
		s.logger.Debug(ctx, "load superseded by a newer one",
			logger.String("source", source),
			logger.String("load_id", snap.LoadID),
		)
		return nil, fmt.Errorf("%w: %s", ErrSuperseded, source)
	}

	metrics.RecordLoad(float64(time.Since(start).Milliseconds()))
	s.setLastError(nil)
	s.logger.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.String("load_id", snap.LoadID),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("runners", len(snap.Runners)),
		logger.Int("years", len(snap.Years)),
	)
	return snap, nil
}

func (s *Service) setLastError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// Current returns the current snapshot, or false before the first
// successful load.
func (s *Service) Current(ctx context.Context) (*repository.Snapshot, bool) {
	return s.store.Snapshot(ctx)
}

// records returns the current record set, or nil before the first
// load. View accessors treat nil as an empty dataset.
func (s *Service) records(ctx context.Context) []model.Record {
	snap, ok := s.store.Snapshot(ctx)
	if !ok {
		return nil
	}
	return snap.Records
}

// Trend returns the year-indexed pace table.
func (s *Service) Trend(ctx context.Context) []aggregate.TrendRow {
	return aggregate.Trend(s.records(ctx))
}

// Comparison returns the single-year ranking, fastest first.
func (s *Service) Comparison(ctx context.Context, year int) []aggregate.ComparisonEntry {
	return aggregate.Comparison(s.records(ctx), year)
}

// Distributions returns per-year min/median/max pace.
func (s *Service) Distributions(ctx context.Context) []aggregate.Distribution {
	return aggregate.Distributions(s.records(ctx))
}

// Ranks returns the per-year bump-chart rank table.
func (s *Service) Ranks(ctx context.Context) []aggregate.RankRow {
	return aggregate.Ranks(s.records(ctx))
}

// ImprovementYearOverYear returns the motivational report for the two
// most recent years.
func (s *Service) ImprovementYearOverYear(ctx context.Context) []aggregate.Improvement {
	return aggregate.YearOverYear(s.records(ctx))
}

// ImprovementAllTime returns the motivational first-vs-last report.
func (s *Service) ImprovementAllTime(ctx context.Context) []aggregate.Improvement {
	return aggregate.AllTime(s.records(ctx))
}

// Stats is the operational summary served on /stats. Dataset is nil
// before the first successful load.
type Stats struct {
	Started     bool          `json:"started"`
	DefaultUnit string        `json:"default_unit"`
	LastError   string        `json:"last_error,omitempty"`
	Dataset     *DatasetStats `json:"dataset,omitempty"`
}

// DatasetStats describes the currently committed snapshot.
type DatasetStats struct {
	LoadID       string `json:"load_id"`
	LoadedAt     string `json:"loaded_at"`
	Records      int    `json:"records"`
	Runners      int    `json:"runners"`
	Years        int    `json:"years"`
	RejectedRows int    `json:"rejected_rows"`
}

// GetStats returns the operational summary for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	started := s.started
	lastErr := s.lastErr
	s.mu.RUnlock()

	stats := Stats{
		Started:     started,
		DefaultUnit: string(s.defaultUnit),
	}
	if lastErr != nil {
		stats.LastError = lastErr.Error()
	}
	if s.store == nil {
		return stats
	}
	if snap, ok := s.store.Snapshot(context.Background()); ok {
		stats.Dataset = &DatasetStats{
			LoadID:       snap.LoadID,
			LoadedAt:     snap.LoadedAt.Format(time.RFC3339),
			Records:      len(snap.Records),
			Runners:      len(snap.Runners),
			Years:        len(snap.Years),
			RejectedRows: snap.Stats.Rejected,
		}
	}
	return stats
}
