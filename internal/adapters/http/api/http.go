// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/paceline/paceline/internal/adapters/ingest"
	"github.com/paceline/paceline/internal/adapters/repository"
	"github.com/paceline/paceline/internal/domain/aggregate"
	"github.com/paceline/paceline/internal/domain/pace"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the application service.
type Dependencies interface {
	// Ingestion entry points. Both funnel into the same sanitizer.
	LoadFromReader(ctx context.Context, r io.Reader, format ingest.Format) (*repository.Snapshot, error)
	Reload(ctx context.Context) (*repository.Snapshot, error)

	// Current exposes the validated dataset snapshot.
	Current(ctx context.Context) (*repository.Snapshot, bool)

	// Derived views, recomputed per call from the current snapshot.
	Trend(ctx context.Context) []aggregate.TrendRow
	Comparison(ctx context.Context, year int) []aggregate.ComparisonEntry
	Distributions(ctx context.Context) []aggregate.Distribution
	Ranks(ctx context.Context) []aggregate.RankRow
	ImprovementYearOverYear(ctx context.Context) []aggregate.Improvement
	ImprovementAllTime(ctx context.Context) []aggregate.Improvement

	// Presentation defaults.
	DefaultUnit() pace.Unit
	MaxUploadBytes() int64
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	loadHandler      *LoadHandler
	datasetHandler   *DatasetHandler
	viewsHandler     *ViewsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		loadHandler:      NewLoadHandler(deps),
		datasetHandler:   NewDatasetHandler(deps),
		viewsHandler:     NewViewsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/upload", MetricsMiddleware(s.loadHandler.HandleUpload, "upload"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.loadHandler.HandleReload, "reload"))
	mux.HandleFunc("/dataset", MetricsMiddleware(s.datasetHandler.HandleGetDataset, "dataset"))
	mux.HandleFunc("/trend", MetricsMiddleware(s.viewsHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/comparison", MetricsMiddleware(s.viewsHandler.HandleGetComparison, "comparison"))
	mux.HandleFunc("/distributions", MetricsMiddleware(s.viewsHandler.HandleGetDistributions, "distributions"))
	mux.HandleFunc("/ranks", MetricsMiddleware(s.viewsHandler.HandleGetRanks, "ranks"))
	mux.HandleFunc("/improvement", MetricsMiddleware(s.viewsHandler.HandleGetImprovement, "improvement"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
