// Package conflict detects overlapping event pairs.
//
// Conflicts use strict interval overlap: two events conflict only when
// they share more than an instant, so back-to-back sessions whose end
// and start touch do not conflict. This is deliberately stricter than
// the inclusive day-overlap test the bucketer uses.
package conflict

import "github.com/orangehat/meetcal/internal/domain/model"

// Pair is one unordered conflicting combination. First always precedes
// Second in the input order.
type Pair struct {
	First  model.Event `json:"first"`
	Second model.Event `json:"second"`
}

// Conflict reports whether the two events' intervals strictly overlap.
// Missing or inverted ends are normalized to zero-length intervals, so
// a degenerate event can never conflict.
func Conflict(a, b model.Event) bool {
	return a.Start.Before(b.EffectiveEnd()) && b.Start.Before(a.EffectiveEnd())
}

// AllConflicts returns every conflicting pair across events, each
// unordered pair reported once. The O(n²) sweep is fine at directory
// scale.
func AllConflicts(events []model.Event) []Pair {
	out := make([]Pair, 0)
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if Conflict(events[i], events[j]) {
				out = append(out, Pair{First: events[i], Second: events[j]})
			}
		}
	}
	return out
}
