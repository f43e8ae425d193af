// Package repository defines the event store interface and its
// in-memory implementation. The store is the data-access collaborator
// feeding the calendar core: it owns the materialized event list and
// hands out ordered snapshots for the pipeline to filter and bucket.
package repository

import (
	"context"
	"time"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// Event is the stored record type.
type Event = model.Event

// Store provides read/write access to the event collection.
type Store interface {
	// Put inserts or replaces the event with the same ID.
	Put(ctx context.Context, e Event) error

	// Remove deletes the event with the given ID. Removing an unknown ID
	// is not an error.
	Remove(ctx context.Context, id string) error

	// Get returns the event with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (Event, error)

	// Window returns every event whose [Start, EffectiveEnd] interval
	// intersects [from, to] inclusively, ordered by start instant then ID.
	Window(ctx context.Context, from, to time.Time) ([]Event, error)

	// All returns every event ordered by start instant then ID.
	All(ctx context.Context) ([]Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) int
}
