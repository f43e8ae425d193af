package relevance_test

import (
	"testing"
	"time"

	model "github.com/orangehat/meetcal/internal/domain/model"
	relevance "github.com/orangehat/meetcal/internal/domain/relevance"
	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

func ev(id string, start time.Time) model.Event {
	return model.Event{ID: id, Start: start}
}

func TestUpcomingWithin(t *testing.T) {
	Convey("Given events around now", t, func() {
		events := []model.Event{
			ev("past", now.Add(-2*time.Hour)),
			ev("soon", now.Add(3*time.Hour)),
			ev("tomorrow", now.AddDate(0, 0, 1)),
			ev("nextweek", now.AddDate(0, 0, 6)),
			ev("far", now.AddDate(0, 0, 30)),
		}

		Convey("When selecting a 7 day window", func() {
			out := relevance.UpcomingWithin(events, 7, now)

			Convey("Then only future events inside the horizon survive", func() {
				So(len(out), ShouldEqual, 3)
				So(out[0].ID, ShouldEqual, "soon")
				So(out[1].ID, ShouldEqual, "tomorrow")
				So(out[2].ID, ShouldEqual, "nextweek")
			})
		})

		Convey("When an event starts exactly at now", func() {
			out := relevance.UpcomingWithin([]model.Event{ev("edge", now)}, 7, now)

			Convey("Then the lower bound is inclusive", func() {
				So(len(out), ShouldEqual, 1)
			})
		})

		Convey("When an event starts exactly at the horizon", func() {
			out := relevance.UpcomingWithin([]model.Event{ev("edge", now.AddDate(0, 0, 7))}, 7, now)

			Convey("Then the upper bound is inclusive", func() {
				So(len(out), ShouldEqual, 1)
			})
		})

		Convey("When days is zero", func() {
			out := relevance.UpcomingWithin(events, 0, now)

			Convey("Then only the rest of today qualifies", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].ID, ShouldEqual, "soon")
			})
		})

		Convey("When days is negative", func() {
			out := relevance.UpcomingWithin(events, -1, now)
			So(len(out), ShouldEqual, 0)
		})

		Convey("When events arrive unsorted", func() {
			shuffled := []model.Event{
				ev("c", now.Add(72*time.Hour)),
				ev("a", now.Add(24*time.Hour)),
				ev("b", now.Add(48*time.Hour)),
			}
			out := relevance.UpcomingWithin(shuffled, 7, now)

			Convey("Then the output is ascending by start", func() {
				So(out[0].ID, ShouldEqual, "a")
				So(out[1].ID, ShouldEqual, "b")
				So(out[2].ID, ShouldEqual, "c")
			})
		})

		Convey("When two events share a start instant", func() {
			same := []model.Event{
				ev("first", now.Add(time.Hour)),
				ev("second", now.Add(time.Hour)),
			}
			out := relevance.UpcomingWithin(same, 1, now)

			Convey("Then their input order is kept", func() {
				So(out[0].ID, ShouldEqual, "first")
				So(out[1].ID, ShouldEqual, "second")
			})
		})
	})
}

func TestPopularByAttendance(t *testing.T) {
	Convey("Given events with attendance figures", t, func() {
		events := []model.Event{
			{ID: "half", Attendees: 50, Capacity: 100, Start: now},
			{ID: "full", Attendees: 30, Capacity: 30, Start: now},
			{ID: "sparse", Attendees: 5, Capacity: 200, Start: now},
			{ID: "nocap", Attendees: 10, Start: now},
			{ID: "nobody", Capacity: 50, Start: now},
		}

		Convey("When ranking", func() {
			out := relevance.PopularByAttendance(events, 10)

			Convey("Then events missing figures are excluded", func() {
				So(len(out), ShouldEqual, 3)
			})

			Convey("And the fullest event ranks first", func() {
				So(out[0].ID, ShouldEqual, "full")
				So(out[1].ID, ShouldEqual, "half")
				So(out[2].ID, ShouldEqual, "sparse")
			})
		})

		Convey("When the limit is smaller than the candidates", func() {
			out := relevance.PopularByAttendance(events, 2)
			So(len(out), ShouldEqual, 2)
			So(out[0].ID, ShouldEqual, "full")
		})

		Convey("When the limit is zero", func() {
			out := relevance.PopularByAttendance(events, 0)
			So(len(out), ShouldEqual, 0)
		})

		Convey("When no event has figures", func() {
			out := relevance.PopularByAttendance([]model.Event{{ID: "x", Start: now}}, 5)
			So(len(out), ShouldEqual, 0)
		})
	})
}

func TestSelector(t *testing.T) {
	Convey("Given a selector with a pinned clock", t, func() {
		s := relevance.NewSelector(
			relevance.WithClock(func() time.Time { return now }),
			relevance.WithDefaultWindow(3),
		)

		events := []model.Event{
			ev("in", now.AddDate(0, 0, 2)),
			ev("out", now.AddDate(0, 0, 5)),
		}

		Convey("When asking for the default window", func() {
			out := s.Upcoming(events, 0)

			Convey("Then the configured window applies", func() {
				So(len(out), ShouldEqual, 1)
				So(out[0].ID, ShouldEqual, "in")
			})
		})

		Convey("When asking for an explicit window", func() {
			out := s.Upcoming(events, 7)
			So(len(out), ShouldEqual, 2)
		})

		Convey("When reading the clock", func() {
			So(s.Now().Equal(now), ShouldBeTrue)
		})
	})
}
