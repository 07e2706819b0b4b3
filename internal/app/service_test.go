package service_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paceline/paceline/internal/adapters/ingest"
	service "github.com/paceline/paceline/internal/app"
	"github.com/paceline/paceline/internal/domain/pace"
	"github.com/paceline/paceline/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const sampleCSV = `runner,year,time,event
Ada Hill,2022,25:00,5
Ada Hill,2023,22:30,5
Ben Ode,2022,23:20,5
Ben Ode,2023,24:10,5
Cleo Park,2023,20:50,5
Broken Row,2023,nope,5
`

func startedService(ctx context.Context, opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(ctx), ShouldBeNil)
	return svc
}

func TestLoadFromReader(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		Reset(svc.Stop)

		Convey("When a CSV upload loads", func() {
			snap, err := svc.LoadFromReader(ctx, strings.NewReader(sampleCSV), ingest.FormatCSV)

			So(err, ShouldBeNil)
			So(snap.LoadID, ShouldNotBeEmpty)

			Convey("Then the invalid row is dropped, not fatal", func() {
				So(snap.Records, ShouldHaveLength, 5)
				So(snap.Stats.Total, ShouldEqual, 6)
				So(snap.Stats.Rejected, ShouldEqual, 1)
			})

			Convey("Then the snapshot carries identity lists", func() {
				So(snap.Runners, ShouldResemble, []string{"Ada Hill", "Ben Ode", "Cleo Park"})
				So(snap.Years, ShouldResemble, []int{2022, 2023})
			})

			Convey("Then the views derive from the snapshot", func() {
				trend := svc.Trend(ctx)
				So(trend, ShouldHaveLength, 2)

				comparison := svc.Comparison(ctx, 2023)
				So(comparison, ShouldHaveLength, 3)
				So(comparison[0].Runner, ShouldEqual, "Cleo Park")
				So(comparison[0].ShortName, ShouldEqual, "Cleo")

				dists := svc.Distributions(ctx)
				So(dists, ShouldHaveLength, 2)

				ranks := svc.Ranks(ctx)
				So(ranks, ShouldHaveLength, 2)

				yoy := svc.ImprovementYearOverYear(ctx)
				So(yoy, ShouldHaveLength, 1)
				So(yoy[0].Runner, ShouldEqual, "Ada Hill")
				So(yoy[0].Improvement, ShouldEqual, 30)
				So(yoy[0].Percent, ShouldEqual, 10.0)

				alltime := svc.ImprovementAllTime(ctx)
				So(alltime, ShouldHaveLength, 1)
				So(alltime[0].Runner, ShouldEqual, "Ada Hill")
			})
		})

		Convey("When every row fails validation", func() {
			src := "runner,year,time,event\nAda,20x3,25:00,5\n"
			_, err := svc.LoadFromReader(ctx, strings.NewReader(src), ingest.FormatCSV)

			So(err, ShouldWrap, service.ErrNoValidRows)

			Convey("Then no snapshot is installed", func() {
				_, ok := svc.Current(ctx)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a bad load follows a good one", func() {
			first, err := svc.LoadFromReader(ctx, strings.NewReader(sampleCSV), ingest.FormatCSV)
			So(err, ShouldBeNil)

			_, err = svc.LoadFromReader(ctx, strings.NewReader("runner,year,time,event\n"), ingest.FormatCSV)
			So(err, ShouldWrap, service.ErrNoValidRows)

			Convey("Then the earlier snapshot survives", func() {
				current, ok := svc.Current(ctx)
				So(ok, ShouldBeTrue)
				So(current.LoadID, ShouldEqual, first.LoadID)
			})
		})

		Convey("When a second upload succeeds", func() {
			first, err := svc.LoadFromReader(ctx, strings.NewReader(sampleCSV), ingest.FormatCSV)
			So(err, ShouldBeNil)

			second, err := svc.LoadFromReader(ctx, strings.NewReader(sampleCSV), ingest.FormatCSV)
			So(err, ShouldBeNil)

			Convey("Then it supersedes the first wholesale", func() {
				So(second.LoadID, ShouldNotEqual, first.LoadID)
				current, _ := svc.Current(ctx)
				So(current.LoadID, ShouldEqual, second.LoadID)
			})
		})
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a started service and files on disk", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		Reset(svc.Stop)
		dir := t.TempDir()

		Convey("When the file exists", func() {
			path := filepath.Join(dir, "results.csv")
			So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)

			snap, err := svc.LoadFromFile(ctx, path)
			So(err, ShouldBeNil)
			So(snap.Records, ShouldHaveLength, 5)
		})

		Convey("When the file is missing", func() {
			_, err := svc.LoadFromFile(ctx, filepath.Join(dir, "missing.csv"))
			So(err, ShouldWrap, ingest.ErrUnreadable)
		})
	})
}

func TestReload(t *testing.T) {
	Convey("Given a service without a bundled source", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		Reset(svc.Stop)

		Convey("Then reload reports the missing source", func() {
			_, err := svc.Reload(ctx)
			So(err, ShouldWrap, service.ErrNoBundledSource)
		})
	})

	Convey("Given a service with a bundled source", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		path := filepath.Join(dir, "results.csv")
		So(os.WriteFile(path, []byte(sampleCSV), 0o600), ShouldBeNil)

		svc := startedService(ctx, service.WithDataPath(path))
		Reset(svc.Stop)

		Convey("Then reload re-ingests the file", func() {
			snap, err := svc.Reload(ctx)
			So(err, ShouldBeNil)
			So(snap.Records, ShouldHaveLength, 5)
		})
	})
}

func TestConfigurationOptions(t *testing.T) {
	Convey("Given construction options", t, func() {
		ctx := context.Background()

		Convey("When the display unit and upload cap are set", func() {
			svc := startedService(ctx,
				service.WithDefaultUnit(pace.UnitKilometer),
				service.WithMaxUploadBytes(1024),
			)
			Reset(svc.Stop)

			So(svc.DefaultUnit(), ShouldEqual, pace.UnitKilometer)
			So(svc.MaxUploadBytes(), ShouldEqual, 1024)
		})

		Convey("When field names are overridden", func() {
			svc := startedService(ctx, service.WithFieldNames("athlete", "season", "result", "distance"))
			Reset(svc.Stop)

			src := "athlete,season,result,distance\nAda,2023,25:00,5\n"
			snap, err := svc.LoadFromReader(ctx, strings.NewReader(src), ingest.FormatCSV)

			So(err, ShouldBeNil)
			So(snap.Records, ShouldHaveLength, 1)
			So(snap.Records[0].Runner, ShouldEqual, "Ada")
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(ctx)
		Reset(svc.Stop)

		Convey("Then stats report the lifecycle before any load", func() {
			stats := svc.GetStats()
			So(stats.Started, ShouldBeTrue)
			So(stats.DefaultUnit, ShouldEqual, "mile")
			So(stats.LastError, ShouldBeEmpty)
			So(stats.Dataset, ShouldBeNil)
		})

		Convey("Then stats describe the dataset after a load", func() {
			snap, err := svc.LoadFromReader(ctx, strings.NewReader(sampleCSV), ingest.FormatCSV)
			So(err, ShouldBeNil)

			stats := svc.GetStats()
			So(stats.Dataset, ShouldNotBeNil)
			So(stats.Dataset.LoadID, ShouldEqual, snap.LoadID)
			So(stats.Dataset.Records, ShouldEqual, 5)
			So(stats.Dataset.Runners, ShouldEqual, 3)
			So(stats.Dataset.Years, ShouldEqual, 2)
			So(stats.Dataset.RejectedRows, ShouldEqual, 1)
		})

		Convey("Then a failed load surfaces as the last error", func() {
			_, err := svc.LoadFromReader(ctx, strings.NewReader("runner,year,time,event\n"), ingest.FormatCSV)
			So(err, ShouldWrap, service.ErrNoValidRows)

			So(svc.GetStats().LastError, ShouldNotBeEmpty)
		})
	})
}
