// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/paceline/paceline/internal/adapters/repository"
)

// DatasetHandler handles dataset summary requests.
type DatasetHandler struct {
	deps Dependencies
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(deps Dependencies) *DatasetHandler {
	return &DatasetHandler{deps: deps}
}

// datasetResponse is the plain-data dataset description the rendering
// layer binds its selectors to.
type datasetResponse struct {
	LoadID      string   `json:"load_id"`
	LoadedAt    string   `json:"loaded_at"`
	RecordCount int      `json:"record_count"`
	Rejected    int      `json:"rejected_rows"`
	Runners     []string `json:"runners"`
	Years       []int    `json:"years"`
}

// HandleGetDataset handles GET /dataset requests.
func (h *DatasetHandler) HandleGetDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, ok := h.deps.Current(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, "no_dataset", repository.ErrNoDataset)
		return
	}
	writeJSON(w, http.StatusOK, datasetResponse{
		LoadID:      snap.LoadID,
		LoadedAt:    snap.LoadedAt.Format(time.RFC3339),
		RecordCount: len(snap.Records),
		Rejected:    snap.Stats.Rejected,
		Runners:     snap.Runners,
		Years:       snap.Years,
	})
}
