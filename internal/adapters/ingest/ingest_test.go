package ingest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/paceline/paceline/internal/adapters/ingest"
	"github.com/paceline/paceline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDetectFormat(t *testing.T) {
	Convey("Given source file names", t, func() {
		So(ingest.DetectFormat("results.csv"), ShouldEqual, ingest.FormatCSV)
		So(ingest.DetectFormat("results.xlsx"), ShouldEqual, ingest.FormatXLSX)
		So(ingest.DetectFormat("RESULTS.XLSX"), ShouldEqual, ingest.FormatXLSX)
		So(ingest.DetectFormat("results.xlsm"), ShouldEqual, ingest.FormatXLSX)

		Convey("Then unknown extensions fall back to CSV", func() {
			So(ingest.DetectFormat("results.txt"), ShouldEqual, ingest.FormatCSV)
			So(ingest.DetectFormat("results"), ShouldEqual, ingest.FormatCSV)
		})
	})
}

func TestDecodeCSV(t *testing.T) {
	Convey("Given CSV sources", t, func() {
		Convey("When the source is well formed", func() {
			src := "runner,year,time,event\nAda Hill,2023,25:00,5\nBen Ode,2023,27:30,5\n"
			rows, err := ingest.DecodeCSV(strings.NewReader(src))

			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0], ShouldResemble, model.RawRow{
				"runner": "Ada Hill", "year": "2023", "time": "25:00", "event": "5",
			})
		})

		Convey("When the header uses mixed case and padding", func() {
			src := " Runner , YEAR ,Time,Event\nAda,2023,25:00,5\n"
			rows, err := ingest.DecodeCSV(strings.NewReader(src))

			So(err, ShouldBeNil)
			So(rows[0]["runner"], ShouldEqual, "Ada")
			So(rows[0]["year"], ShouldEqual, "2023")
		})

		Convey("When a data row is short", func() {
			src := "runner,year,time,event\nAda,2023\n"
			rows, err := ingest.DecodeCSV(strings.NewReader(src))

			So(err, ShouldBeNil)
			So(rows[0], ShouldResemble, model.RawRow{"runner": "Ada", "year": "2023"})
		})

		Convey("When a data row has extra cells", func() {
			src := "runner,year,time,event\nAda,2023,25:00,5,extra,cells\n"
			rows, err := ingest.DecodeCSV(strings.NewReader(src))

			So(err, ShouldBeNil)
			So(rows[0], ShouldHaveLength, 4)
		})

		Convey("When the source is empty", func() {
			_, err := ingest.DecodeCSV(strings.NewReader(""))
			So(err, ShouldWrap, ingest.ErrMissingHeader)
		})

		Convey("When the source has a header but no rows", func() {
			rows, err := ingest.DecodeCSV(strings.NewReader("runner,year,time,event\n"))
			So(err, ShouldBeNil)
			So(rows, ShouldBeEmpty)
		})
	})
}

func TestDecodeXLSX(t *testing.T) {
	Convey("Given an in-memory workbook", t, func() {
		wb := excelize.NewFile()
		sheet := wb.GetSheetName(0)
		So(wb.SetSheetRow(sheet, "A1", &[]any{"Runner", "Year", "Time", "Event"}), ShouldBeNil)
		So(wb.SetSheetRow(sheet, "A2", &[]any{"Ada Hill", "2023", "25:00", "5"}), ShouldBeNil)
		So(wb.SetSheetRow(sheet, "A3", &[]any{"Ben Ode", "2023", "27:30", "5"}), ShouldBeNil)

		buf, err := wb.WriteToBuffer()
		So(err, ShouldBeNil)

		Convey("When decoding the first sheet", func() {
			rows, err := ingest.DecodeXLSX(buf)

			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 2)
			So(rows[0]["runner"], ShouldEqual, "Ada Hill")
			So(rows[1]["time"], ShouldEqual, "27:30")
		})
	})

	Convey("Given a reader that is not a workbook", t, func() {
		_, err := ingest.DecodeXLSX(strings.NewReader("not a zip archive"))
		So(err, ShouldWrap, ingest.ErrUnreadable)
	})
}

func TestFormatsAgree(t *testing.T) {
	Convey("Given the same table encoded both ways", t, func() {
		header := []any{"runner", "year", "time", "event"}
		data := [][]any{
			{"Ada Hill", "2023", "25:00", "5"},
			{"Ben Ode", "2023", "27:30", "5"},
		}

		csvSrc := "runner,year,time,event\nAda Hill,2023,25:00,5\nBen Ode,2023,27:30,5\n"

		wb := excelize.NewFile()
		sheet := wb.GetSheetName(0)
		So(wb.SetSheetRow(sheet, "A1", &header), ShouldBeNil)
		for i, row := range data {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			So(err, ShouldBeNil)
			r := row
			So(wb.SetSheetRow(sheet, cell, &r), ShouldBeNil)
		}
		buf, err := wb.WriteToBuffer()
		So(err, ShouldBeNil)

		Convey("Then both decoders yield the same rows", func() {
			fromCSV, err := ingest.DecodeCSV(strings.NewReader(csvSrc))
			So(err, ShouldBeNil)

			fromXLSX, err := ingest.DecodeXLSX(buf)
			So(err, ShouldBeNil)

			So(fromXLSX, ShouldResemble, fromCSV)
		})
	})
}

func TestReadFile(t *testing.T) {
	Convey("Given files on disk", t, func() {
		dir := t.TempDir()

		Convey("When the file exists", func() {
			path := filepath.Join(dir, "results.csv")
			content := "runner,year,time,event\nAda,2023,25:00,5\n"
			So(os.WriteFile(path, []byte(content), 0o600), ShouldBeNil)

			rows, err := ingest.ReadFile(path)
			So(err, ShouldBeNil)
			So(rows, ShouldHaveLength, 1)
		})

		Convey("When the file does not exist", func() {
			_, err := ingest.ReadFile(filepath.Join(dir, "missing.csv"))
			So(err, ShouldWrap, ingest.ErrUnreadable)
		})
	})
}
