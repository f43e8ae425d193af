package model

import (
	"fmt"
	"strings"
)

// View names a calendar grid layout.
type View string

// Supported calendar views.
const (
	ViewMonth     View = "month"
	ViewWeek      View = "week"
	ViewThreeWeek View = "3week"
	ViewWeekend   View = "weekend"
)

// ParseView maps a raw view parameter onto a supported View. Empty
// means the month view; anything else unknown is an error.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewMonth:
		return ViewMonth, nil
	case ViewWeek:
		return ViewWeek, nil
	case ViewThreeWeek:
		return ViewThreeWeek, nil
	case ViewWeekend:
		return ViewWeekend, nil
	default:
		return "", fmt.Errorf("unknown view %q", s)
	}
}
