package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			enabledOpt := WithEnabled(true)
			registryOpt := WithRegistry(prometheus.NewRegistry())

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(enabledOpt, ShouldNotBeNil)
				So(registryOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("And its collectors should be gatherable", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithHistogramBuckets([]float64{1, 5, 25, 125}),
				WithEnabled(true),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the package-level helpers", t, func() {
		Convey("When recording ingest metrics", func() {
			So(RecordEventIngested, ShouldNotPanic)
			So(RecordEventDuplicate, ShouldNotPanic)
			So(RecordIngestError, ShouldNotPanic)
			So(func() { RecordIngestLatency(12.5) }, ShouldNotPanic)
		})

		Convey("When recording queue metrics", func() {
			So(func() { UpdateQueueSize(42) }, ShouldNotPanic)
			So(func() { UpdateQueueCapacity(1000) }, ShouldNotPanic)
			So(RecordQueueEnqueue, ShouldNotPanic)
			So(func() { RecordQueueEnqueueError("backpressure") }, ShouldNotPanic)
		})

		Convey("When recording worker and store metrics", func() {
			So(func() { UpdateWorkerCount(4) }, ShouldNotPanic)
			So(func() { UpdateStoreEvents(500) }, ShouldNotPanic)
			So(func() { RecordStoreUpdateLatency(0.3) }, ShouldNotPanic)
			So(func() { RecordStoreQueryLatency(1.7) }, ShouldNotPanic)
		})

		Convey("When recording feed metrics", func() {
			So(func() { RecordFeedFetch("btc-bkk") }, ShouldNotPanic)
			So(func() { RecordFeedFetchError("btc-bkk") }, ShouldNotPanic)
			So(RecordFeedRefresh, ShouldNotPanic)
		})

		Convey("When recording calendar metrics", func() {
			So(func() { RecordCalendarBuild("month") }, ShouldNotPanic)
			So(func() { RecordCalendarBuildDuration(3.2) }, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() { RecordHTTPRequest("/calendar", "GET", "200") }, ShouldNotPanic)
			So(func() { RecordHTTPRequestDuration("/calendar", "GET", "200", 5.5) }, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() { UpdateSystemMemoryUsage(1 << 20) }, ShouldNotPanic)
			So(func() { UpdateSystemGoroutineCount(12) }, ShouldNotPanic)
			So(func() { RecordSystemGCPauseTime(0.08) }, ShouldNotPanic)
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		registry := GetRegistry()
		So(registry, ShouldNotBeNil)

		Convey("When gathering after recording", func() {
			RecordEventIngested()
			RecordCalendarBuild("week")

			families, err := registry.Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}

			Convey("Then the service metrics are present under the meetcal namespace", func() {
				So(names["meetcal_events_ingested_total"], ShouldBeTrue)
				So(names["meetcal_calendar_builds_total"], ShouldBeTrue)
			})
		})
	})
}
