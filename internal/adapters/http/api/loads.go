// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/paceline/paceline/internal/adapters/ingest"
	"github.com/paceline/paceline/internal/adapters/repository"
	service "github.com/paceline/paceline/internal/app"
)

// LoadHandler handles dataset ingestion requests.
type LoadHandler struct {
	deps Dependencies
}

// NewLoadHandler creates a new load handler.
func NewLoadHandler(deps Dependencies) *LoadHandler {
	return &LoadHandler{deps: deps}
}

// loadResponse acknowledges a committed load with its summary counts.
type loadResponse struct {
	LoadID   string `json:"load_id"`
	Records  int    `json:"records"`
	Rejected int    `json:"rejected_rows"`
	Runners  int    `json:"runners"`
	Years    int    `json:"years"`
}

// HandleUpload handles POST /upload requests. The body is either a
// multipart form with a "file" part or the raw tabular content; the
// format comes from the file name or the Content-Type.
func (h *LoadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.upload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.deps.MaxUploadBytes())

	body, format, err := uploadSource(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}
	defer func() { _ = body.Close() }()

	snap, err := h.deps.LoadFromReader(r.Context(), body, format)
	if err != nil {
		writeLoadError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotAck(snap))
}

// HandleReload handles POST /reload requests against the bundled
// resource path.
func (h *LoadHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Reload(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoBundledSource) {
			writeError(w, http.StatusBadRequest, "no_bundled_source", err)
			return
		}
		writeLoadError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshotAck(snap))
}

// uploadSource picks the reader and format for an upload request.
func uploadSource(r *http.Request) (io.ReadCloser, ingest.Format, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrNoUpload, err)
		}
		return file, ingest.DetectFormat(header.Filename), nil
	}

	format := ingest.FormatCSV
	if mediaType == "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		format = ingest.FormatXLSX
	}
	if q := r.URL.Query().Get("format"); q != "" {
		format = ingest.DetectFormat("upload." + q)
	}
	return r.Body, format, nil
}

// writeLoadError maps pipeline errors onto the API's status codes:
// unreadable source and readable-but-empty input are distinct failure
// modes, and a superseded load was discarded rather than applied.
func writeLoadError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNoValidRows):
		writeError(w, http.StatusUnprocessableEntity, "no_valid_rows", err)
	case errors.Is(err, service.ErrSuperseded):
		writeError(w, http.StatusConflict, "superseded", err)
	case errors.Is(err, ingest.ErrUnreadable), errors.Is(err, ingest.ErrMissingHeader):
		writeError(w, http.StatusBadRequest, "source_unreadable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
	}
}

func snapshotAck(snap *repository.Snapshot) loadResponse {
	return loadResponse{
		LoadID:   snap.LoadID,
		Records:  len(snap.Records),
		Rejected: snap.Stats.Rejected,
		Runners:  len(snap.Runners),
		Years:    len(snap.Years),
	}
}
