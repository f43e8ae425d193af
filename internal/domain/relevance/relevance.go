// Package relevance selects the events most worth surfacing: what is
// coming up soon and what is filling up fastest.
package relevance

import (
	"sort"
	"time"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// UpcomingWithin returns the events starting inside [now, now+days],
// both bounds inclusive, sorted ascending by start instant. The sort is
// stable so same-instant events keep their input order. now is supplied
// by the caller's clock; see Selector for the injected default.
func UpcomingWithin(events []model.Event, days int, now time.Time) []model.Event {
	if days < 0 {
		return []model.Event{}
	}
	horizon := now.AddDate(0, 0, days)

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Start.Before(now) || e.Start.After(horizon) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// PopularByAttendance ranks events by their attendees/capacity ratio,
// descending, truncated to limit. Events missing either figure are
// excluded outright rather than ranked at zero.
func PopularByAttendance(events []model.Event, limit int) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.Capacity <= 0 || e.Attendees <= 0 {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ratio(out[i]) > ratio(out[j])
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func ratio(e model.Event) float64 {
	return float64(e.Attendees) / float64(e.Capacity)
}
