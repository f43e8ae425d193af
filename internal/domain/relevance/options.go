package relevance

import (
	"time"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithClock replaces the wall clock. Tests pin it to a fixed instant so
// upcoming-window selection stays deterministic across midnight.
func WithClock(clock func() time.Time) Option {
	return func(s *Selector) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDefaultWindow sets the horizon used when a caller asks for the
// default agenda window.
func WithDefaultWindow(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// Default agenda horizon in days.
const defaultWindowDays = 7

// Selector wraps the pure relevance helpers with an injected clock and
// a configured default window, so callers that have no explicit "now"
// still get deterministic behavior under test.
type Selector struct {
	clock      func() time.Time
	windowDays int
}

// NewSelector creates a Selector with configuration options.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		clock:      time.Now,
		windowDays: defaultWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now exposes the selector's clock.
func (s *Selector) Now() time.Time {
	return s.clock()
}

// Upcoming returns events starting within days of the selector's clock.
// A non-positive days falls back to the configured default window.
func (s *Selector) Upcoming(events []model.Event, days int) []model.Event {
	if days <= 0 {
		days = s.windowDays
	}
	return UpcomingWithin(events, days, s.clock())
}
