// Package filter narrows event lists by composable, AND-combined
// criteria.
//
// Every function is pure and stable: inputs are never mutated, and the
// relative order of surviving events matches the input. Multi-select
// criteria follow the "empty selection means unfiltered" contract — an
// empty set keeps every event rather than dropping them all, which is
// what a freshly opened filter UI expects.
package filter

import (
	"strings"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// Criteria bundles the filter inputs harvested from a request. The zero
// value matches everything.
type Criteria struct {
	// Query is matched case-insensitively as a substring of the title,
	// description, or any speaker name.
	Query string

	// Categories keeps events whose category is in the set (exact match).
	Categories []string

	// Locations keeps events whose location contains any of the given
	// labels, case-insensitively. Labels are free text harvested from
	// existing events, so substring rather than equality.
	Locations []string

	// Statuses keeps events whose effective status is in the set.
	Statuses []model.Status
}

// Apply runs all criteria in a fixed order: search, category, location,
// status. Earlier stages shrink the slice for later ones; the final set
// is the same under any stage order.
func Apply(events []model.Event, c Criteria) []model.Event {
	out := Search(events, c.Query)
	out = ByCategory(out, c.Categories)
	out = ByLocation(out, c.Locations)
	out = ByStatus(out, c.Statuses)
	return out
}

// Search keeps events matching query in at least one text field. An
// empty or blank query is a no-op.
func Search(events []model.Event, query string) []model.Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return events
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if matchesQuery(e, q) {
			out = append(out, e)
		}
	}
	return out
}

// ByCategory keeps events whose category is one of categories. An empty
// set keeps everything.
func ByCategory(events []model.Event, categories []string) []model.Event {
	if len(categories) == 0 {
		return events
	}

	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if _, ok := wanted[e.Category]; ok {
			out = append(out, e)
		}
	}
	return out
}

// ByLocation keeps events whose location contains any of the selected
// labels, ignoring case. An empty set keeps everything.
func ByLocation(events []model.Event, locations []string) []model.Event {
	if len(locations) == 0 {
		return events
	}

	labels := make([]string, 0, len(locations))
	for _, l := range locations {
		labels = append(labels, strings.ToLower(l))
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		loc := strings.ToLower(e.Location)
		for _, label := range labels {
			if strings.Contains(loc, label) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// ByStatus keeps events whose effective status is one of statuses. An
// empty set keeps everything.
func ByStatus(events []model.Event, statuses []model.Status) []model.Event {
	if len(statuses) == 0 {
		return events
	}

	wanted := make(map[model.Status]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if _, ok := wanted[e.EffectiveStatus()]; ok {
			out = append(out, e)
		}
	}
	return out
}

// UniqueCategories returns the distinct non-empty category values in
// first-seen order, for populating filter choices.
func UniqueCategories(events []model.Event) []string {
	return distinct(events, func(e model.Event) string { return e.Category })
}

// UniqueLocations returns the distinct non-empty location values in
// first-seen order.
func UniqueLocations(events []model.Event) []string {
	return distinct(events, func(e model.Event) string { return e.Location })
}

func distinct(events []model.Event, field func(model.Event) string) []string {
	seen := make(map[string]struct{}, len(events))
	out := make([]string, 0, len(events))
	for _, e := range events {
		v := field(e)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func matchesQuery(e model.Event, q string) bool {
	if strings.Contains(strings.ToLower(e.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, s := range e.Speakers {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
