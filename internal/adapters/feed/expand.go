package feed

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// Expand turns parsed feed events into concrete calendar events inside
// the window. Non-recurring events pass through when they intersect the
// window; RRULE events are expanded occurrence by occurrence with
// EXDATEs removed. Event IDs are stable across refreshes (source, UID,
// occurrence start) so re-ingestion upserts instead of duplicating.
func Expand(src Source, events []rawEvent, win ExpandWindow) []model.Event {
	loc := win.Location
	if loc == nil {
		loc = time.Local
	}
	capPerEvent := win.MaxPerEvent
	if capPerEvent <= 0 {
		capPerEvent = defaultMaxPerEvent
	}

	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.rrule == "" {
			if intersects(ev.start, ev.end, win.Start, win.End) {
				out = append(out, occurrence(src, ev, ev.start, ev.end, loc))
			}
			continue
		}
		out = append(out, expandRecurring(src, ev, win, loc, capPerEvent)...)
	}
	return out
}

func expandRecurring(src Source, ev rawEvent, win ExpandWindow, loc *time.Location, capPerEvent int) []model.Event {
	r, err := rrule.StrToRRule(ev.rrule)
	if err != nil {
		// A bad RRULE degrades to the base occurrence only.
		if intersects(ev.start, ev.end, win.Start, win.End) {
			return []model.Event{occurrence(src, ev, ev.start, ev.end, loc)}
		}
		return nil
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	// Between works in the event's own timezone.
	starts := set.Between(win.Start.In(ev.start.Location()), win.End.In(ev.start.Location()), true)
	if len(starts) > capPerEvent {
		starts = starts[:capPerEvent]
	}

	duration := ev.end.Sub(ev.start)
	out := make([]model.Event, 0, len(starts))
	for _, s := range starts {
		out = append(out, occurrence(src, ev, s, s.Add(duration), loc))
	}
	return out
}

// occurrence builds the canonical event for one concrete instance.
func occurrence(src Source, ev rawEvent, start, end time.Time, loc *time.Location) model.Event {
	start = start.In(loc)
	end = end.In(loc)

	if ev.allDay {
		// All-day instances occupy exactly their calendar day; the ICS
		// exclusive next-midnight DTEND would leak into the following
		// day under inclusive bucketing.
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		start = day
		end = day.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	id := src.ID + "/" + ev.uid
	if ev.rrule != "" {
		id += "@" + start.Format(time.RFC3339)
	}

	return model.Event{
		ID:          id,
		Title:       ev.summary,
		Description: ev.description,
		Start:       start,
		End:         end,
		Category:    src.Category,
		Location:    ev.location,
	}
}

func intersects(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.IsZero() {
		aEnd = aStart
	}
	return !aEnd.Before(bStart) && !aStart.After(bEnd)
}
