// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/orangehat/meetcal/internal/domain/conflict"
	"github.com/orangehat/meetcal/internal/domain/dedupe"
	"github.com/orangehat/meetcal/internal/domain/filter"
	"github.com/orangehat/meetcal/internal/domain/model"
)

// Dependencies required by the HTTP handlers. An interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	dedupe.Deduper

	// Submit pushes an event into the ingest pipeline. Returns false on
	// backpressure.
	Submit(ctx context.Context, e model.Event) bool

	// Calendar runs the filter -> window -> grid -> bucket pipeline.
	Calendar(ctx context.Context, view model.View, anchor time.Time, crit filter.Criteria) ([]model.CalendarDay, error)

	// Events returns the filtered flat event list.
	Events(ctx context.Context, crit filter.Criteria) ([]model.Event, error)

	// Upcoming returns events starting within days of now.
	Upcoming(ctx context.Context, days int) ([]model.Event, error)

	// Popular ranks events by attendance ratio.
	Popular(ctx context.Context, limit int) ([]model.Event, error)

	// Conflicts returns all pairwise overlapping events.
	Conflicts(ctx context.Context) ([]conflict.Pair, error)

	// FilterChoices returns the distinct categories and locations for
	// populating filter controls.
	FilterChoices(ctx context.Context) (categories, locations []string, err error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	calendarHandler *CalendarHandler
	eventsHandler   *EventsHandler
	agendaHandler   *AgendaHandler
	conflictHandler *ConflictHandler
	filtersHandler  *FiltersHandler
}

// NewServer creates an API server with all handlers. maxLimit caps the
// client-supplied limit and days parameters.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		calendarHandler: NewCalendarHandler(deps),
		eventsHandler:   NewEventsHandler(deps),
		agendaHandler:   NewAgendaHandler(deps, maxLimit),
		conflictHandler: NewConflictHandler(deps),
		filtersHandler:  NewFiltersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/calendar", MetricsMiddleware(s.calendarHandler.HandleGetCalendar, "calendar"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandleEvents, "events"))
	mux.HandleFunc("/agenda", MetricsMiddleware(s.agendaHandler.HandleGetAgenda, "agenda"))
	mux.HandleFunc("/popular", MetricsMiddleware(s.agendaHandler.HandleGetPopular, "popular"))
	mux.HandleFunc("/conflicts", MetricsMiddleware(s.conflictHandler.HandleGetConflicts, "conflicts"))
	mux.HandleFunc("/filters", MetricsMiddleware(s.filtersHandler.HandleGetFilters, "filters"))
}

// criteriaFromQuery builds filter criteria from request parameters.
// Repeated category/location/status parameters form the selection sets;
// absent parameters leave the corresponding filter off.
func criteriaFromQuery(r *http.Request) filter.Criteria {
	q := r.URL.Query()

	statuses := make([]model.Status, 0, len(q["status"]))
	for _, s := range q["status"] {
		statuses = append(statuses, model.ParseStatus(s))
	}

	return filter.Criteria{
		Query:      q.Get("q"),
		Categories: q["category"],
		Locations:  q["location"],
		Statuses:   statuses,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
