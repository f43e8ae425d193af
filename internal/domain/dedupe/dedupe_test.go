package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/orangehat/meetcal/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording events", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the event is new", func() {
				seen := d.SeenAndRecord(context.Background(), "event-1")

				Convey("Then it should return false and record the event", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the event was already seen", func() {
				d.SeenAndRecord(context.Background(), "event-1")
				seen := d.SeenAndRecord(context.Background(), "event-1")

				Convey("Then it should return true without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And multiple distinct events are recorded", func() {
				events := []string{"event-1", "event-2", "event-3", "event-4", "event-5"}
				for _, event := range events {
					So(d.SeenAndRecord(context.Background(), event), ShouldBeFalse)
				}

				Convey("Then all events should be recorded", func() {
					So(d.Size(), ShouldEqual, int64(len(events)))
					for _, event := range events {
						So(d.SeenAndRecord(context.Background(), event), ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording an event", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(context.Background(), "event-1")
			d.Unrecord(context.Background(), "event-1")

			Convey("Then the event can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(context.Background(), "event-1"), ShouldBeFalse)
			})

			Convey("And unrecording an unknown ID is a no-op", func() {
				So(func() { d.Unrecord(context.Background(), "never-seen") }, ShouldNotPanic)
			})
		})

		Convey("When the cache is bounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

			Convey("And more IDs arrive than fit", func() {
				for i := 0; i < 5; i++ {
					d.SeenAndRecord(context.Background(), fmt.Sprintf("event-%d", i))
				}

				Convey("Then the oldest IDs are evicted", func() {
					So(d.Size(), ShouldEqual, 3)
					// The first two wrapped out, so they read as unseen.
					So(d.SeenAndRecord(context.Background(), "event-0"), ShouldBeFalse)
				})

				Convey("And the newest IDs are still tracked", func() {
					So(d.SeenAndRecord(context.Background(), "event-4"), ShouldBeTrue)
				})
			})

			Convey("And an evicted slot was unrecorded first", func() {
				d.SeenAndRecord(context.Background(), "a")
				d.Unrecord(context.Background(), "a")
				d.SeenAndRecord(context.Background(), "b")
				d.SeenAndRecord(context.Background(), "c")
				d.SeenAndRecord(context.Background(), "d")

				Convey("Then eviction never forgets a live ID", func() {
					So(d.SeenAndRecord(context.Background(), "d"), ShouldBeTrue)
				})
			})
		})

		Convey("When accessed concurrently", func() {
			d := dedupe.NewInMemoryDeduper()
			var wg sync.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						d.SeenAndRecord(context.Background(), fmt.Sprintf("w%d-e%d", worker, j))
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every distinct ID is tracked exactly once", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})
	})
}
