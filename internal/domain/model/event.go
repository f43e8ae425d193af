// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Status is the viewer's personal relationship to an event.
type Status string

// Recognized status values. An empty status means Available.
const (
	StatusAvailable Status = "available"
	StatusGoing     Status = "going"
	StatusMaybe     Status = "maybe"
	StatusBlocked   Status = "blocked"
)

// ParseStatus normalizes a raw status string. Unknown or empty values
// fall back to StatusAvailable.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusGoing:
		return StatusGoing
	case StatusMaybe:
		return StatusMaybe
	case StatusBlocked:
		return StatusBlocked
	default:
		return StatusAvailable
	}
}

// Event is the canonical event record flowing through the system.
// Records come from direct submissions or ICS feed ingestion; the
// domain core treats them as read-only.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	Speakers    []string  `json:"speakers,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Attendees   int       `json:"attendees,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
}

// EffectiveEnd returns the event's end instant, substituting Start when
// End is missing or precedes Start. Callers use it instead of End so a
// malformed record degrades to a zero-length interval rather than a
// negative one.
func (e Event) EffectiveEnd() time.Time {
	if e.End.IsZero() || e.End.Before(e.Start) {
		return e.Start
	}
	return e.End
}

// EffectiveStatus returns the status with the empty value mapped to
// StatusAvailable.
func (e Event) EffectiveStatus() Status {
	if e.Status == "" {
		return StatusAvailable
	}
	return e.Status
}

// Availability summarizes a day's events for the viewer.
type Availability string

const (
	AvailabilityFree  Availability = "free"
	AvailabilityMaybe Availability = "maybe"
	AvailabilityBusy  Availability = "busy"
)

// CalendarDay is one cell of a rendered calendar grid. It is derived on
// every request and never stored.
type CalendarDay struct {
	Date         time.Time    `json:"date"`
	Events       []Event      `json:"events"`
	IsWeekend    bool         `json:"is_weekend"`
	IsToday      bool         `json:"is_today"`
	Availability Availability `json:"availability"`
}
