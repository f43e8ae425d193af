package seed

import "time"

// Config holds configuration for the seed run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumEvents int           // Number of events to generate
	SpanDays  int           // Calendar span the events are scattered over
	Workers   int           // Number of concurrent submitters
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Event is the submission payload for POST /events.
type Event struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Start       string   `json:"start"`
	End         string   `json:"end,omitempty"`
	Category    string   `json:"category,omitempty"`
	Location    string   `json:"location,omitempty"`
	Speakers    []string `json:"speakers,omitempty"`
	Status      string   `json:"status,omitempty"`
	Attendees   int      `json:"attendees,omitempty"`
	Capacity    int      `json:"capacity,omitempty"`
}

// AckResponse is the response from event submission.
type AckResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seed run statistics.
type Stats struct {
	EventsGenerated  int
	EventsSubmitted  int
	EventsSuccessful int
	EventsDuplicate  int
	EventsFailed     int
	StoredEvents     int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
