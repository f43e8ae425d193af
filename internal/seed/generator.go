package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/orangehat/meetcal/pkg/logger"
)

// Event shape knobs.
const (
	minDurationMinutes  = 60
	durationStepMinutes = 30
	durationSteps       = 5
	startHourEarliest   = 9
	startHourLatest     = 20
	minCapacity         = 10
	capacityRange       = 190
	weekendBias         = 3 // weekend days are drawn this many extra times
)

var titles = []string{
	"Lightning Network Deep Dive",
	"Intro to Self-Custody",
	"Node Operators Roundtable",
	"Mining in Practice",
	"Coinjoin and Privacy Basics",
	"Taproot Workshop",
	"Hardware Wallet Clinic",
	"Socratic Seminar",
	"Running Your First Full Node",
	"Merchant Adoption Meetup",
	"BIP Reading Group",
	"Multisig for Families",
}

var categories = []string{
	"workshop", "talk", "social", "seminar", "hackday",
}

var locations = []string{
	"BOB Space", "Fitculty", "Community Hall", "Room 21", "Online",
}

var speakerPool = []string{
	"Ada", "Satoshi", "Hal", "Nick", "Wei", "Adam", "Tadge", "Elle",
}

var statuses = []string{
	"going", "maybe", "blocked", "free", "",
}

func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick(vals []string) string {
	return vals[randomInt(len(vals))]
}

// generateEvents creates realistic meetup events scattered over the
// configured span, starting today.
func generateEvents(ctx context.Context, config *Config, stats *Stats) []Event {
	logger.Get().Info(ctx, "generating events",
		logger.Int("numEvents", config.NumEvents),
		logger.Int("spanDays", config.SpanDays))

	// Bias the draw toward weekends so calendars look like real meetup
	// schedules.
	days := make([]int, 0, config.SpanDays*2)
	today := time.Now()
	for d := 0; d < config.SpanDays; d++ {
		days = append(days, d)
		wd := today.AddDate(0, 0, d).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			for i := 0; i < weekendBias; i++ {
				days = append(days, d)
			}
		}
	}

	events := make([]Event, config.NumEvents)
	for i := range events {
		events[i] = generateSingleEvent(today, days)
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated events successfully", logger.Int("count", len(events)))
	return events
}

// generateSingleEvent creates one event on a random day of the span.
func generateSingleEvent(today time.Time, days []int) Event {
	day := today.AddDate(0, 0, days[randomInt(len(days))])
	hour := startHourEarliest + randomInt(startHourLatest-startHourEarliest+1)
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	duration := time.Duration(minDurationMinutes+randomInt(durationSteps)*durationStepMinutes) * time.Minute

	capacity := minCapacity + randomInt(capacityRange)
	attendees := randomInt(capacity + 1)

	speakers := make([]string, 0, 2)
	speakers = append(speakers, pick(speakerPool))
	if randomInt(3) == 0 {
		speakers = append(speakers, pick(speakerPool))
	}

	return Event{
		ID:        uuid.New().String(),
		Title:     pick(titles),
		Start:     start.UTC().Format(time.RFC3339),
		End:       start.Add(duration).UTC().Format(time.RFC3339),
		Category:  pick(categories),
		Location:  pick(locations),
		Speakers:  speakers,
		Status:    pick(statuses),
		Attendees: attendees,
		Capacity:  capacity,
	}
}
