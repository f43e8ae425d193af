// Package grid generates the ordered date sequences behind calendar views.
//
// All functions are pure: the dates returned are derived only from the
// anchor argument. Day-of-time is normalized to midnight in the anchor's
// location, and weeks run Sunday through Saturday.
package grid

import "time"

// Days per view, fixed by the week layout.
const (
	daysPerWeek      = 7
	daysPerThreeWeek = 21
)

// MonthGrid returns every date to render for the anchor's month view:
// the full calendar month extended backward to the Sunday on-or-before
// the 1st and forward to the Saturday on-or-after the last day. The
// result is strictly ascending, gap-free, and always a whole number of
// weeks (28, 35, or 42 dates).
func MonthGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)
	return span(weekStart(first), weekEnd(last))
}

// WeekGrid returns the 7 dates of the anchor's week, starting on the
// Sunday on-or-before the anchor.
func WeekGrid(anchor time.Time) []time.Time {
	return consecutive(weekStart(DayStart(anchor)), daysPerWeek)
}

// ThreeWeekGrid returns 21 consecutive dates starting on the Sunday
// on-or-before the anchor. Used by the condensed agenda view.
func ThreeWeekGrid(anchor time.Time) []time.Time {
	return consecutive(weekStart(DayStart(anchor)), daysPerThreeWeek)
}

// WeekendGrid returns only the Saturdays and Sundays of the anchor's
// calendar month, in ascending order. Unlike MonthGrid it never spills
// into adjacent months.
func WeekendGrid(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	last := first.AddDate(0, 1, -1)

	out := make([]time.Time, 0, 10)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if IsWeekend(d) {
			out = append(out, d)
		}
	}
	return out
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable instant of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar day, each
// evaluated in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// weekStart returns the Sunday on-or-before d. When d already is a
// Sunday no extra week is prepended.
func weekStart(d time.Time) time.Time {
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// weekEnd returns the Saturday on-or-after d.
func weekEnd(d time.Time) time.Time {
	return d.AddDate(0, 0, int(time.Saturday-d.Weekday()))
}

// span returns every date in [start, end] inclusive.
func span(start, end time.Time) []time.Time {
	out := make([]time.Time, 0, daysPerWeek*6)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// consecutive returns n dates starting at start.
func consecutive(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
