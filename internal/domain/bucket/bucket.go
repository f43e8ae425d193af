// Package bucket partitions a flat event list into per-day calendar
// cells for a generated date grid.
package bucket

import (
	"time"

	"github.com/orangehat/meetcal/internal/domain/grid"
	"github.com/orangehat/meetcal/internal/domain/model"
)

// Build maps every date in dates to a CalendarDay carrying the events
// whose interval intersects that day. Day intersection is inclusive: an
// event touching a day boundary still belongs to that day, and a
// zero-duration event lands in exactly one bucket.
//
// The output preserves the input date order one-to-one. now drives the
// IsToday flag and must come from the caller's clock so tests can pin
// it; Build itself never reads the wall clock.
func Build(dates []time.Time, events []model.Event, now time.Time) []model.CalendarDay {
	days := make([]model.CalendarDay, len(dates))
	for i, d := range dates {
		attached := eventsOn(d, events)
		days[i] = model.CalendarDay{
			Date:         d,
			Events:       attached,
			IsWeekend:    grid.IsWeekend(d),
			IsToday:      grid.SameDay(d, now),
			Availability: availability(attached),
		}
	}
	return days
}

// eventsOn selects the subsequence of events intersecting date's day,
// keeping the input order. A linear scan is plenty at directory scale.
func eventsOn(date time.Time, events []model.Event) []model.Event {
	dayStart := grid.DayStart(date)
	dayEnd := grid.DayEnd(date)

	out := make([]model.Event, 0)
	for _, e := range events {
		if !e.Start.After(dayEnd) && !e.EffectiveEnd().Before(dayStart) {
			out = append(out, e)
		}
	}
	return out
}

// availability folds the day's event statuses into one value. Highest
// precedence wins: going/blocked mean the viewer is busy, maybe means
// tentatively busy, anything else leaves the day free.
func availability(events []model.Event) model.Availability {
	sawMaybe := false
	for _, e := range events {
		switch e.EffectiveStatus() {
		case model.StatusGoing, model.StatusBlocked:
			return model.AvailabilityBusy
		case model.StatusMaybe:
			sawMaybe = true
		}
	}
	if sawMaybe {
		return model.AvailabilityMaybe
	}
	return model.AvailabilityFree
}
