package aggregate

import (
	"sort"

	"github.com/paceline/paceline/internal/domain/model"
)

// RankCell is a runner's 1-based position within the row's year.
type RankCell struct {
	Runner string `json:"runner"`
	Rank   int    `json:"rank"`
}

// RankRow is one year of the bump chart. A runner absent that year has
// no cell; connecting across gaps is the chart layer's concern.
type RankRow struct {
	Year  int        `json:"year"`
	Cells []RankCell `json:"cells"`
}

// Ranks sorts each year's records ascending by pace and assigns ranks
// from 1. Stable sort keeps equal paces in input order.
func Ranks(records []model.Record) []RankRow {
	byYear := make(map[int][]model.Record)
	for _, r := range records {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	rows := make([]RankRow, 0, len(byYear))
	for _, year := range Years(records) {
		group := byYear[year]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PaceSeconds < group[j].PaceSeconds
		})
		cells := make([]RankCell, 0, len(group))
		for i, r := range group {
			cells = append(cells, RankCell{Runner: r.Runner, Rank: i + 1})
		}
		rows = append(rows, RankRow{Year: year, Cells: cells})
	}
	return rows
}
