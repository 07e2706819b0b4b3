package aggregate

import "github.com/paceline/paceline/internal/domain/model"

// TrendCell is one runner's pace for the row's year.
type TrendCell struct {
	Runner      string  `json:"runner"`
	PaceSeconds float64 `json:"pace_seconds"`
}

// TrendRow is one year of the time-series trend table. Cells appear in
// global first-seen runner order; a runner without a record that year
// has no cell.
type TrendRow struct {
	Year  int         `json:"year"`
	Cells []TrendCell `json:"cells"`
}

// Trend builds the year-indexed pace table. Duplicate (runner, year)
// records resolve last-write-wins in input order.
func Trend(records []model.Record) []TrendRow {
	runners := Runners(records)
	years := Years(records)
	byYear := paceByRunnerYear(records)

	rows := make([]TrendRow, 0, len(years))
	for _, year := range years {
		paces := byYear[year]
		cells := make([]TrendCell, 0, len(paces))
		for _, runner := range runners {
			p, ok := paces[runner]
			if !ok {
				continue
			}
			cells = append(cells, TrendCell{Runner: runner, PaceSeconds: p})
		}
		rows = append(rows, TrendRow{Year: year, Cells: cells})
	}
	return rows
}
