// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/orangehat/meetcal/internal/domain/filter"
	"github.com/orangehat/meetcal/internal/domain/model"
)

// Date format for the anchor parameter.
const anchorLayout = "2006-01-02"

// CalendarDependencies defines the interface for calendar rendering.
type CalendarDependencies interface {
	Calendar(ctx context.Context, view model.View, anchor time.Time, crit filter.Criteria) ([]model.CalendarDay, error)
}

// CalendarHandler handles calendar view requests.
type CalendarHandler struct {
	deps CalendarDependencies
}

// NewCalendarHandler creates a calendar handler.
func NewCalendarHandler(deps CalendarDependencies) *CalendarHandler {
	return &CalendarHandler{deps: deps}
}

// calendarResponse is the payload for GET /calendar.
type calendarResponse struct {
	Anchor string              `json:"anchor"`
	View   model.View          `json:"view"`
	Days   []model.CalendarDay `json:"days"`
}

// HandleGetCalendar handles
// GET /calendar?view=month&anchor=2025-07-15&q=&category=&location=&status=.
// view defaults to month, anchor to the current day.
func (h *CalendarHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_calendar"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	view, err := model.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	var anchor time.Time
	if raw := r.URL.Query().Get("anchor"); raw != "" {
		anchor, err = time.Parse(anchorLayout, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: anchor must be YYYY-MM-DD", op, ErrBadRequest))
			return
		}
	}

	days, err := h.deps.Calendar(r.Context(), view, anchor, criteriaFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	resp := calendarResponse{View: view, Days: days}
	if len(days) > 0 {
		resp.Anchor = days[0].Date.Format(anchorLayout)
	}
	if !anchor.IsZero() {
		resp.Anchor = anchor.Format(anchorLayout)
	}
	writeJSON(w, http.StatusOK, resp)
}
