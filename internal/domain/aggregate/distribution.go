package aggregate

import (
	"sort"

	"github.com/paceline/paceline/internal/domain/model"
)

// Distribution summarizes one year's pace spread.
type Distribution struct {
	Year          int     `json:"year"`
	MinSeconds    float64 `json:"min_seconds"`
	MedianSeconds float64 `json:"median_seconds"`
	MaxSeconds    float64 `json:"max_seconds"`
}

// Distributions computes min, median and max pace per year, one entry
// per year that actually has records, in ascending year order.
func Distributions(records []model.Record) []Distribution {
	byYear := make(map[int][]float64)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r.PaceSeconds)
	}

	out := make([]Distribution, 0, len(byYear))
	for _, year := range Years(records) {
		paces := byYear[year]
		if len(paces) == 0 {
			continue
		}
		sort.Float64s(paces)
		out = append(out, Distribution{
			Year:          year,
			MinSeconds:    paces[0],
			MedianSeconds: median(paces),
			MaxSeconds:    paces[len(paces)-1],
		})
	}
	return out
}

// median applies the standard even/odd rule to an ascending slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
