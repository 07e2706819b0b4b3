// Package seed generates synthetic race-result files for exercising
// the ingestion pipeline and can post them to a running service.
package seed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Generation bounds. Paces drift a little year over year so the
// improvement reports have something to say.
const (
	basePaceMinSeconds  = 360 // 6:00 per mile
	basePaceRangeSecond = 240 // up to 10:00 per mile
	yearlyDriftSeconds  = 30
	defaultDistance     = 3.1
)

var firstNames = []string{
	"Avery", "Brooke", "Casey", "Dana", "Eli", "Frankie",
	"Gale", "Harper", "Indie", "Jules", "Kai", "Lane",
}

var lastNames = []string{
	"Hill", "Brooks", "Marsh", "Stone", "Reyes", "Nakamura",
	"Olsen", "Price", "Quinn", "Silva",
}

// Generator produces deterministic synthetic results for a fixed seed.
type Generator struct {
	rng      *rand.Rand
	runners  int
	years    []int
	distance float64
}

// NewGenerator builds a generator for the given runner count and year
// span. The same seed always yields the same rows.
func NewGenerator(seed int64, runners, firstYear, lastYear int) *Generator {
	years := make([]int, 0, lastYear-firstYear+1)
	for y := firstYear; y <= lastYear; y++ {
		years = append(years, y)
	}
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic seed for reproducible fixtures
		runners:  runners,
		years:    years,
		distance: defaultDistance,
	}
}

// Rows returns header plus data rows in the service's default column
// layout. Runners occasionally skip a year so rank gaps show up.
func (g *Generator) Rows() [][]string {
	rows := [][]string{{"runner", "year", "time", "event"}}
	for i := 0; i < g.runners; i++ {
		name := firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))] + " " + strconv.Itoa(i)
		base := basePaceMinSeconds + g.rng.Intn(basePaceRangeSecond)
		for yi, year := range g.years {
			if g.rng.Intn(6) == 0 { // skipped season
				continue
			}
			paceSeconds := base - yi*g.rng.Intn(yearlyDriftSeconds)
			if paceSeconds < basePaceMinSeconds/2 {
				paceSeconds = basePaceMinSeconds / 2
			}
			total := int(float64(paceSeconds) * g.distance)
			rows = append(rows, []string{
				name,
				strconv.Itoa(year),
				fmt.Sprintf("%d:%02d", total/60, total%60),
				strconv.FormatFloat(g.distance, 'f', 1, 64),
			})
		}
	}
	return rows
}

// CSV renders the generated rows as CSV bytes.
func (g *Generator) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(g.Rows()); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX renders the generated rows as a single-sheet workbook.
func (g *Generator) XLSX() ([]byte, error) {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	for i, row := range g.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("building sheet: %w", err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("building sheet: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
