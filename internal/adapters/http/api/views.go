// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/paceline/paceline/internal/domain/aggregate"
	"github.com/paceline/paceline/internal/domain/clock"
	"github.com/paceline/paceline/internal/domain/pace"
)

// ViewsHandler serves the five derived views. Pace-bearing responses
// carry both the numeric pace in the requested unit and a pre-rendered
// display string for axis and tooltip labels.
type ViewsHandler struct {
	deps Dependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

type paceCell struct {
	Runner      string  `json:"runner"`
	PaceSeconds float64 `json:"pace_seconds"`
	PaceDisplay string  `json:"pace_display"`
}

type trendRowResponse struct {
	Year  int        `json:"year"`
	Cells []paceCell `json:"cells"`
}

type trendResponse struct {
	Unit pace.Unit          `json:"unit"`
	Rows []trendRowResponse `json:"rows"`
}

// HandleGetTrend handles GET /trend?unit= requests.
func (h *ViewsHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	unit, err := h.requestUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_unit", fmt.Errorf("%s: %w", op, err))
		return
	}

	rows := h.deps.Trend(r.Context())
	out := trendResponse{Unit: unit, Rows: make([]trendRowResponse, 0, len(rows))}
	for _, row := range rows {
		cells := make([]paceCell, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, newPaceCell(c.Runner, c.PaceSeconds, unit))
		}
		out.Rows = append(out.Rows, trendRowResponse{Year: row.Year, Cells: cells})
	}
	writeJSON(w, http.StatusOK, out)
}

type comparisonEntryResponse struct {
	Runner      string  `json:"runner"`
	ShortName   string  `json:"short_name"`
	PaceSeconds float64 `json:"pace_seconds"`
	PaceDisplay string  `json:"pace_display"`
}

type comparisonResponse struct {
	Unit    pace.Unit                 `json:"unit"`
	Year    string                    `json:"year"`
	Entries []comparisonEntryResponse `json:"entries"`
}

// HandleGetComparison handles GET /comparison?year=&unit= requests.
// A missing year or year=all yields an empty comparison; the caller
// renders a placeholder.
func (h *ViewsHandler) HandleGetComparison(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_comparison"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	unit, err := h.requestUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_unit", fmt.Errorf("%s: %w", op, err))
		return
	}

	yearParam := strings.TrimSpace(r.URL.Query().Get("year"))
	out := comparisonResponse{Unit: unit, Year: yearParam, Entries: []comparisonEntryResponse{}}
	if yearParam == "" || strings.EqualFold(yearParam, "all") {
		out.Year = "all"
		writeJSON(w, http.StatusOK, out)
		return
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_year", fmt.Errorf("%s: %w: year %q", op, ErrBadRequest, yearParam))
		return
	}

	for _, e := range h.deps.Comparison(r.Context(), year) {
		converted := pace.Convert(e.PaceSeconds, unit)
		out.Entries = append(out.Entries, comparisonEntryResponse{
			Runner:      e.Runner,
			ShortName:   e.ShortName,
			PaceSeconds: converted,
			PaceDisplay: clock.Format(converted),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type distributionResponse struct {
	Year          int     `json:"year"`
	MinSeconds    float64 `json:"min_seconds"`
	MedianSeconds float64 `json:"median_seconds"`
	MaxSeconds    float64 `json:"max_seconds"`
	MinDisplay    string  `json:"min_display"`
	MedianDisplay string  `json:"median_display"`
	MaxDisplay    string  `json:"max_display"`
}

type distributionsResponse struct {
	Unit  pace.Unit              `json:"unit"`
	Years []distributionResponse `json:"years"`
}

// HandleGetDistributions handles GET /distributions?unit= requests.
func (h *ViewsHandler) HandleGetDistributions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_distributions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	unit, err := h.requestUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_unit", fmt.Errorf("%s: %w", op, err))
		return
	}

	dists := h.deps.Distributions(r.Context())
	out := distributionsResponse{Unit: unit, Years: make([]distributionResponse, 0, len(dists))}
	for _, d := range dists {
		minPace := pace.Convert(d.MinSeconds, unit)
		medianPace := pace.Convert(d.MedianSeconds, unit)
		maxPace := pace.Convert(d.MaxSeconds, unit)
		out.Years = append(out.Years, distributionResponse{
			Year:          d.Year,
			MinSeconds:    minPace,
			MedianSeconds: medianPace,
			MaxSeconds:    maxPace,
			MinDisplay:    clock.Format(minPace),
			MedianDisplay: clock.Format(medianPace),
			MaxDisplay:    clock.Format(maxPace),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type ranksResponse struct {
	Rows []aggregate.RankRow `json:"rows"`
}

// HandleGetRanks handles GET /ranks requests. Ranks are unit-agnostic.
func (h *ViewsHandler) HandleGetRanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rows := h.deps.Ranks(r.Context())
	if rows == nil {
		rows = []aggregate.RankRow{}
	}
	writeJSON(w, http.StatusOK, ranksResponse{Rows: rows})
}

type improvementEntryResponse struct {
	Runner             string  `json:"runner"`
	ImprovementSeconds float64 `json:"improvement_seconds"`
	Percent            float64 `json:"improvement_percent"`
	PercentDisplay     string  `json:"percent_display"`
}

type improvementResponse struct {
	Mode    string                     `json:"mode"`
	Unit    pace.Unit                  `json:"unit"`
	Entries []improvementEntryResponse `json:"entries"`
}

// HandleGetImprovement handles GET /improvement?mode=yearly|alltime
// requests. Both modes retain only strictly positive improvements.
func (h *ViewsHandler) HandleGetImprovement(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_improvement"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	unit, err := h.requestUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_unit", fmt.Errorf("%s: %w", op, err))
		return
	}

	mode := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("mode")))
	var imps []aggregate.Improvement
	switch mode {
	case "", "yearly":
		mode = "yearly"
		imps = h.deps.ImprovementYearOverYear(r.Context())
	case "alltime":
		imps = h.deps.ImprovementAllTime(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "bad_mode", fmt.Errorf("%s: %w: mode %q", op, ErrBadRequest, mode))
		return
	}

	out := improvementResponse{Mode: mode, Unit: unit, Entries: make([]improvementEntryResponse, 0, len(imps))}
	for _, imp := range imps {
		out.Entries = append(out.Entries, improvementEntryResponse{
			Runner:             imp.Runner,
			ImprovementSeconds: pace.Convert(imp.Improvement, unit),
			Percent:            imp.Percent,
			PercentDisplay:     fmt.Sprintf("%.1f", imp.Percent),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// newPaceCell converts a canonical pace into the requested unit with
// its display string.
func newPaceCell(runner string, paceSecondsPerMile float64, unit pace.Unit) paceCell {
	converted := pace.Convert(paceSecondsPerMile, unit)
	return paceCell{
		Runner:      runner,
		PaceSeconds: converted,
		PaceDisplay: clock.Format(converted),
	}
}

// requestUnit resolves the unit query parameter, falling back to the
// service default.
func (h *ViewsHandler) requestUnit(r *http.Request) (pace.Unit, error) {
	raw := r.URL.Query().Get("unit")
	if strings.TrimSpace(raw) == "" {
		return h.deps.DefaultUnit(), nil
	}
	return pace.ParseUnit(raw)
}
