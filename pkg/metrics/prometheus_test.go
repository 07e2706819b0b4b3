package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/paceline/paceline/pkg/metrics"
)

func TestNewManager(t *testing.T) {
	Convey("Given manager options", t, func() {
		Convey("When a custom registry and names are set", func() {
			registry := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithNamespace("test"),
				metrics.WithSubsystem("unit"),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
				metrics.WithPrometheusRegistry(registry),
			)

			So(m, ShouldNotBeNil)

			Convey("Then all metrics register on that registry", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				// Gather only reports metrics with samples; vectors with
				// no label values yet are absent.
				So(len(families), ShouldBeGreaterThan, 0)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "test_unit_")
				}
			})
		})

		Convey("When empty option values are given", func() {
			registry := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithNamespace(""),
				metrics.WithSubsystem(""),
				metrics.WithHistogramBuckets(nil),
				metrics.WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(m, ShouldNotBeNil)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				for _, f := range families {
					So(f.GetName(), ShouldStartWith, "paceline_pipeline_")
				}
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the pipeline helpers record without panicking", func() {
			So(func() {
				metrics.RecordRowsAccepted(10)
				metrics.RecordRowsRejected(2)
				metrics.RecordLoad(12.5)
				metrics.RecordLoadError("source_unreadable")
				metrics.RecordStaleLoadDiscarded()
				metrics.UpdateDatasetRecords(10)
				metrics.UpdateDatasetRunners(3)
				metrics.UpdateDatasetYears(2)
				metrics.RecordHTTPRequest("trend", "GET", "200")
				metrics.RecordHTTPRequestDuration("trend", "GET", "200", 3.2)
			}, ShouldNotPanic)
		})

		Convey("Then the registry serves the recorded samples", func() {
			metrics.RecordRowsAccepted(1)

			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]struct{}, len(families))
			for _, f := range families {
				names[f.GetName()] = struct{}{}
			}
			So(names, ShouldContainKey, "paceline_pipeline_rows_accepted_total")
		})
	})
}
