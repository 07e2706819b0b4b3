// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	service "github.com/paceline/paceline/internal/app"
)

// StatsProvider reports the pipeline's operational summary.
type StatsProvider interface {
	GetStats() service.Stats
}

// StatsHandler serves the operational summary on /stats: lifecycle
// state, the last load error if any, and the committed dataset counts.
type StatsHandler struct {
	statsProvider StatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.statsProvider.GetStats())
}
