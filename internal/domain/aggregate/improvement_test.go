package aggregate_test

import (
	"testing"

	"github.com/paceline/paceline/internal/domain/aggregate"
	"github.com/paceline/paceline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestYearOverYear(t *testing.T) {
	Convey("Given runners spanning the two most recent years", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2022, 300),
			rec("Ada Hill", 2023, 270),
			rec("Ben Ode", 2022, 280),
			rec("Ben Ode", 2023, 290), // got slower
			rec("Cleo Park", 2023, 250),
		}

		imps := aggregate.YearOverYear(records)

		Convey("Then an improver reports delta and percent against the previous year", func() {
			So(imps, ShouldHaveLength, 1)
			So(imps[0].Runner, ShouldEqual, "Ada Hill")
			So(imps[0].Improvement, ShouldEqual, 30)
			So(imps[0].Percent, ShouldEqual, 10.0)
		})

		Convey("Then decliners and single-year runners are absent", func() {
			for _, imp := range imps {
				So(imp.Runner, ShouldNotEqual, "Ben Ode")
				So(imp.Runner, ShouldNotEqual, "Cleo Park")
			}
		})
	})

	Convey("Given fewer than two distinct years", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2023, 300),
			rec("Ben Ode", 2023, 280),
		}

		Convey("Then the report is empty", func() {
			So(aggregate.YearOverYear(records), ShouldBeEmpty)
		})
	})

	Convey("Given duplicate records for the same runner and year", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2022, 400),
			rec("Ada Hill", 2022, 300), // later record supersedes
			rec("Ada Hill", 2023, 270),
		}

		Convey("Then the later duplicate feeds the comparison", func() {
			imps := aggregate.YearOverYear(records)
			So(imps, ShouldHaveLength, 1)
			So(imps[0].Improvement, ShouldEqual, 30)
		})
	})

	Convey("Given several improvers", t, func() {
		records := []model.Record{
			rec("Small Gain", 2022, 300),
			rec("Small Gain", 2023, 295),
			rec("Big Gain", 2022, 300),
			rec("Big Gain", 2023, 250),
		}

		Convey("Then the biggest delta sorts first", func() {
			imps := aggregate.YearOverYear(records)
			So(imps, ShouldHaveLength, 2)
			So(imps[0].Runner, ShouldEqual, "Big Gain")
			So(imps[1].Runner, ShouldEqual, "Small Gain")
		})
	})
}

func TestAllTime(t *testing.T) {
	Convey("Given runners with multi-year histories", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2020, 320),
			rec("Ada Hill", 2022, 300),
			rec("Ada Hill", 2023, 280), // first 320, last 280
			rec("Ben Ode", 2021, 270),
			rec("Ben Ode", 2023, 285), // slower over time
			rec("Cleo Park", 2023, 250),
		}

		imps := aggregate.AllTime(records)

		Convey("Then the delta spans first to last record", func() {
			So(imps, ShouldHaveLength, 1)
			So(imps[0].Runner, ShouldEqual, "Ada Hill")
			So(imps[0].Improvement, ShouldEqual, 40)
			So(imps[0].Percent, ShouldEqual, 12.5)
		})

		Convey("Then single-record runners are excluded", func() {
			for _, imp := range imps {
				So(imp.Runner, ShouldNotEqual, "Cleo Park")
			}
		})
	})

	Convey("Given records arriving out of year order", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2023, 280),
			rec("Ada Hill", 2020, 320),
		}

		Convey("Then chronology comes from the year, not input order", func() {
			imps := aggregate.AllTime(records)
			So(imps, ShouldHaveLength, 1)
			So(imps[0].Improvement, ShouldEqual, 40)
		})
	})

	Convey("Given a percent that needs rounding", t, func() {
		records := []model.Record{
			rec("Ada Hill", 2022, 321),
			rec("Ada Hill", 2023, 300),
		}

		Convey("Then percent carries one decimal place", func() {
			imps := aggregate.AllTime(records)
			So(imps, ShouldHaveLength, 1)
			// 21/321 = 6.542...% rounds to 6.5
			So(imps[0].Percent, ShouldEqual, 6.5)
		})
	})
}
