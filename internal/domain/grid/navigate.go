package grid

import "time"

// Navigation helpers recompute the anchor date for calendar paging.
// Month moves always land on the 1st of the target month; preserving
// the day-of-month would roll over on short months (Jan 31 -> Mar 3).

// PreviousMonth returns the first day of the month before the anchor's.
func PreviousMonth(anchor time.Time) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return first.AddDate(0, -1, 0)
}

// NextMonth returns the first day of the month after the anchor's.
func NextMonth(anchor time.Time) time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return first.AddDate(0, 1, 0)
}

// PreviousWeek shifts the anchor back exactly 7 calendar days.
func PreviousWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, -daysPerWeek)
}

// NextWeek shifts the anchor forward exactly 7 calendar days.
func NextWeek(anchor time.Time) time.Time {
	return anchor.AddDate(0, 0, daysPerWeek)
}

// Today truncates the supplied instant to its calendar day. Callers own
// the clock; nothing in this package reads time.Now.
func Today(now time.Time) time.Time {
	return DayStart(now)
}
