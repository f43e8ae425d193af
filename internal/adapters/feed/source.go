// Package feed ingests community calendars published as ICS feeds:
// fetch with HTTP revalidation, parse VEVENTs, expand recurrences into
// concrete occurrences inside a rolling horizon, and emit canonical
// events for the ingest pipeline.
package feed

import "time"

// Source is one ICS subscription.
type Source struct {
	// ID identifies the source in config and in generated event IDs.
	ID string
	// URL is the ICS endpoint.
	URL string
	// Category is stamped onto every event from this source, e.g.
	// "Bitcoin Meetup". Optional.
	Category string
}

// ExpandWindow bounds recurrence expansion.
type ExpandWindow struct {
	// Start / End delimit the inclusive occurrence window.
	Start time.Time
	End   time.Time

	// Location is the timezone occurrences are normalized into. Nil
	// means time.Local.
	Location *time.Location

	// MaxPerEvent caps occurrences expanded from a single VEVENT so a
	// pathological RRULE cannot flood the store. Zero uses the default.
	MaxPerEvent int
}

// Cap on occurrences per recurring event.
const defaultMaxPerEvent = 500
