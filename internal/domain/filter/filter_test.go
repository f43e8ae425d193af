package filter_test

import (
	"testing"
	"time"

	filter "github.com/orangehat/meetcal/internal/domain/filter"
	model "github.com/orangehat/meetcal/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleEvents() []model.Event {
	start := time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	return []model.Event{
		{
			ID:       "1",
			Title:    "Lightning Meetup",
			Category: "workshop",
			Location: "BOB Space, Bangkok",
			Speakers: []string{"Ada"},
			Status:   model.StatusGoing,
			Start:    start,
		},
		{
			ID:          "2",
			Title:       "Node Runners",
			Description: "Monthly meetup for node operators",
			Category:    "social",
			Location:    "Fitculty",
			Speakers:    []string{"Hal", "Nick"},
			Status:      model.StatusMaybe,
			Start:       start.Add(time.Hour),
		},
		{
			ID:       "3",
			Title:    "Mining Economics",
			Category: "talk",
			Location: "BOB Space, Bangkok",
			Start:    start.Add(2 * time.Hour),
		},
		{
			ID:       "4",
			Title:    "Privacy Workshop",
			Category: "workshop",
			Location: "Online",
			Speakers: []string{"Wei"},
			Status:   model.StatusBlocked,
			Start:    start.Add(3 * time.Hour),
		},
	}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	Convey("Given a text query", t, func() {
		events := sampleEvents()

		Convey("When the query matches titles and descriptions", func() {
			out := filter.Search(events, "meetup")

			Convey("Then both title and description matches survive", func() {
				So(ids(out), ShouldResemble, []string{"1", "2"})
			})
		})

		Convey("When the query matches a speaker", func() {
			out := filter.Search(events, "hal")
			So(ids(out), ShouldResemble, []string{"2"})
		})

		Convey("When the query differs only by case", func() {
			out := filter.Search(events, "LIGHTNING")
			So(ids(out), ShouldResemble, []string{"1"})
		})

		Convey("When the query is blank", func() {
			out := filter.Search(events, "   ")

			Convey("Then every event survives", func() {
				So(len(out), ShouldEqual, len(events))
			})
		})

		Convey("When nothing matches", func() {
			out := filter.Search(events, "ordinals")
			So(len(out), ShouldEqual, 0)
		})
	})
}

func TestByCategory(t *testing.T) {
	Convey("Given category selections", t, func() {
		events := sampleEvents()

		Convey("When one category is selected", func() {
			out := filter.ByCategory(events, []string{"workshop"})
			So(ids(out), ShouldResemble, []string{"1", "4"})
		})

		Convey("When several categories are selected", func() {
			out := filter.ByCategory(events, []string{"social", "talk"})
			So(ids(out), ShouldResemble, []string{"2", "3"})
		})

		Convey("When the selection is empty", func() {
			out := filter.ByCategory(events, nil)

			Convey("Then no event is dropped", func() {
				So(len(out), ShouldEqual, len(events))
			})
		})

		Convey("When the category match is exact", func() {
			out := filter.ByCategory(events, []string{"work"})
			So(len(out), ShouldEqual, 0)
		})
	})
}

func TestByLocation(t *testing.T) {
	Convey("Given location selections", t, func() {
		events := sampleEvents()

		Convey("When the label is a substring of the stored location", func() {
			out := filter.ByLocation(events, []string{"bob space"})
			So(ids(out), ShouldResemble, []string{"1", "3"})
		})

		Convey("When several labels are selected", func() {
			out := filter.ByLocation(events, []string{"Fitculty", "Online"})
			So(ids(out), ShouldResemble, []string{"2", "4"})
		})

		Convey("When the selection is empty", func() {
			out := filter.ByLocation(events, []string{})
			So(len(out), ShouldEqual, len(events))
		})
	})
}

func TestByStatus(t *testing.T) {
	Convey("Given status selections", t, func() {
		events := sampleEvents()

		Convey("When filtering on going", func() {
			out := filter.ByStatus(events, []model.Status{model.StatusGoing})
			So(ids(out), ShouldResemble, []string{"1"})
		})

		Convey("When filtering on available", func() {
			out := filter.ByStatus(events, []model.Status{model.StatusAvailable})

			Convey("Then events without a status match through the default", func() {
				So(ids(out), ShouldResemble, []string{"3"})
			})
		})

		Convey("When the selection is empty", func() {
			out := filter.ByStatus(events, nil)
			So(len(out), ShouldEqual, len(events))
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given combined criteria", t, func() {
		events := sampleEvents()

		Convey("When several criteria are set", func() {
			out := filter.Apply(events, filter.Criteria{
				Query:      "workshop",
				Categories: []string{"workshop"},
				Locations:  []string{"online"},
			})

			Convey("Then only events satisfying all of them survive", func() {
				So(ids(out), ShouldResemble, []string{"4"})
			})
		})

		Convey("When the criteria are zero", func() {
			out := filter.Apply(events, filter.Criteria{})
			So(len(out), ShouldEqual, len(events))
		})

		Convey("When criteria are applied in any stage order", func() {
			c := filter.Criteria{Categories: []string{"workshop"}, Locations: []string{"bob"}}
			combined := filter.Apply(events, c)
			reordered := filter.ByCategory(filter.ByLocation(events, c.Locations), c.Categories)

			Convey("Then the surviving set is the same", func() {
				So(ids(combined), ShouldResemble, ids(reordered))
			})
		})

		Convey("When events survive", func() {
			out := filter.Apply(events, filter.Criteria{Categories: []string{"workshop", "talk"}})

			Convey("Then their relative order is preserved", func() {
				So(ids(out), ShouldResemble, []string{"1", "3", "4"})
			})
		})
	})
}

func TestUniqueChoices(t *testing.T) {
	Convey("Given the stored events", t, func() {
		events := sampleEvents()

		Convey("When harvesting categories", func() {
			cats := filter.UniqueCategories(events)

			Convey("Then distinct values come back in first-seen order", func() {
				So(cats, ShouldResemble, []string{"workshop", "social", "talk"})
			})
		})

		Convey("When harvesting locations", func() {
			locs := filter.UniqueLocations(events)
			So(locs, ShouldResemble, []string{"BOB Space, Bangkok", "Fitculty", "Online"})
		})

		Convey("When a field is empty", func() {
			withEmpty := append(events, model.Event{ID: "5"})
			cats := filter.UniqueCategories(withEmpty)

			Convey("Then empty values are skipped", func() {
				So(len(cats), ShouldEqual, 3)
			})
		})
	})
}
