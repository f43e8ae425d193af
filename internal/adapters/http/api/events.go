// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orangehat/meetcal/internal/domain/dedupe"
	"github.com/orangehat/meetcal/internal/domain/filter"
	"github.com/orangehat/meetcal/internal/domain/model"
)

// EventDependencies defines the interface for event submission and
// listing.
type EventDependencies interface {
	dedupe.Deduper
	Submit(ctx context.Context, e model.Event) bool
	Events(ctx context.Context, crit filter.Criteria) ([]model.Event, error)
}

// EventsHandler handles event requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates an events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventRequest mirrors the JSON schema for POST /events.
type eventRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Speakers    []string `json:"speakers"`
	Status      string   `json:"status"`
	Attendees   int      `json:"attendees"`
	Capacity    int      `json:"capacity"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.Start) == "":
		return errors.New("missing start")
	}
	if _, err := time.Parse(time.RFC3339, e.Start); err != nil {
		return errors.New("invalid start; must be RFC3339")
	}
	if e.End != "" {
		if _, err := time.Parse(time.RFC3339, e.End); err != nil {
			return errors.New("invalid end; must be RFC3339")
		}
	}
	return nil
}

// toModel converts a validated request into the canonical event shape.
// A missing ID gets a generated UUID so dedupe has something to key on.
func (e eventRequest) toModel() model.Event {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = uuid.New().String()
	}
	start, _ := time.Parse(time.RFC3339, e.Start)
	var end time.Time
	if e.End != "" {
		end, _ = time.Parse(time.RFC3339, e.End)
	}
	return model.Event{
		ID:          id,
		Title:       e.Title,
		Description: e.Description,
		Start:       start,
		End:         end,
		Category:    e.Category,
		Location:    e.Location,
		Speakers:    e.Speakers,
		Status:      model.Status(e.Status),
		Attendees:   e.Attendees,
		Capacity:    e.Capacity,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// HandleEvents dispatches /events by method: POST submits an event,
// GET returns the filtered list.
func (h *EventsHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *EventsHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}

	e := req.toModel()

	// Idempotency check; mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), e.ID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", ID: e.ID, Duplicate: true})
		return
	}

	if ok := h.deps.Submit(r.Context(), e); !ok {
		// Roll back the seen mark so a retry can succeed.
		h.deps.Unrecord(r.Context(), e.ID)
		writeError(w, http.StatusTooManyRequests, "backpressure", fmt.Errorf("%s: %w", op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", ID: e.ID})
}

func (h *EventsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_events"

	events, err := h.deps.Events(r.Context(), criteriaFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}
