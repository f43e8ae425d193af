package repository

import (
	"context"
	"sync"
	"time"

	"github.com/orangehat/meetcal/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: start instant ASC, then event ID ASC (deterministic).
// In-order traversal therefore yields the agenda from earliest to
// latest. Window queries prune on the start bound via the tree and
// filter the end bound per node, tracking the longest stored event so
// multi-day records are never missed.

// node is one treap entry. Keys are (startNanos, id); prio keeps the
// tree balanced in expectation.
type node struct {
	id    string
	start int64 // Start in Unix nanoseconds, the primary sort key
	prio  uint64
	left  *node
	right *node
}

func keyLess(aStart int64, aID string, bStart int64, bID string) bool {
	if aStart != bStart {
		return aStart < bStart
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	return y
}

func insert(n *node, id string, start int64, prio uint64) *node {
	if n == nil {
		return &node{id: id, start: start, prio: prio}
	}
	if keyLess(start, id, n.start, n.id) {
		n.left = insert(n.left, id, start, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, start, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	return n
}

func remove(n *node, id string, start int64) *node {
	if n == nil {
		return nil
	}
	switch {
	case start == n.start && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = remove(n.right, id, start)
		} else {
			n = rotateLeft(n)
			n.left = remove(n.left, id, start)
		}
	case keyLess(start, id, n.start, n.id):
		n.left = remove(n.left, id, start)
	default:
		n.right = remove(n.right, id, start)
	}
	return n
}

// collectThrough appends, in key order, every event whose start is at
// or before cutoff and for which keep returns true. Subtrees entirely
// past the cutoff are pruned.
func collectThrough(n *node, cutoff int64, byID map[string]Event, keep func(Event) bool, out *[]Event) {
	if n == nil {
		return
	}
	collectThrough(n.left, cutoff, byID, keep, out)
	if n.start > cutoff {
		// Everything to the right starts even later.
		return
	}
	if e, ok := byID[n.id]; ok && keep(e) {
		*out = append(*out, e)
	}
	collectThrough(n.right, cutoff, byID, keep, out)
}

// CalStore is the treap-backed event store.
type CalStore struct {
	mu   sync.RWMutex
	root *node
	byID map[string]Event

	// rngState seeds the xorshift priority generator.
	rngState uint64
}

// NewCalStore constructs an empty event store with configuration
// options.
func NewCalStore(_ context.Context, opts ...Option) *CalStore {
	s := &CalStore{
		byID:     make(map[string]Event),
		rngState: defaultRNGSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateStoreEvents(0)
	return s
}

// nextPrio is a xorshift64 step; uniform enough to keep the treap
// balanced in expectation.
func (s *CalStore) nextPrio() uint64 {
	x := s.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.rngState = x
	return x
}

// Put inserts or replaces the event with the same ID.
func (s *CalStore) Put(_ context.Context, e Event) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byID[e.ID]; ok {
		s.root = remove(s.root, old.ID, old.Start.UnixNano())
	}
	s.root = insert(s.root, e.ID, e.Start.UnixNano(), s.nextPrio())
	s.byID[e.ID] = e

	metrics.UpdateStoreEvents(len(s.byID))
	return nil
}

// Remove deletes the event with the given ID.
func (s *CalStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return nil
	}
	s.root = remove(s.root, e.ID, e.Start.UnixNano())
	delete(s.byID, id)

	metrics.UpdateStoreEvents(len(s.byID))
	return nil
}

// Get returns the event with the given ID.
func (s *CalStore) Get(_ context.Context, id string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return e, nil
}

// Window returns events intersecting [from, to] inclusively, in start
// order. Events that began before the window but run into it are
// included.
func (s *CalStore) Window(_ context.Context, from, to time.Time) ([]Event, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if to.Before(from) {
		return nil, ErrInvalidSpan
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0)
	keep := func(e Event) bool {
		return !e.Start.After(to) && !e.EffectiveEnd().Before(from)
	}
	collectThrough(s.root, to.UnixNano(), s.byID, keep, &out)
	return out, nil
}

// All returns every stored event in start order.
func (s *CalStore) All(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, 0, len(s.byID))
	keep := func(Event) bool { return true }
	// No cutoff for a full scan; the sentinel is past any real start.
	collectThrough(s.root, int64(^uint64(0)>>1), s.byID, keep, &out)
	return out, nil
}

// Count returns the number of stored events.
func (s *CalStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
