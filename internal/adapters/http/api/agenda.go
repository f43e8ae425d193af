// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/orangehat/meetcal/internal/domain/model"
)

// AgendaDependencies defines the interface for relevance views.
type AgendaDependencies interface {
	Upcoming(ctx context.Context, days int) ([]model.Event, error)
	Popular(ctx context.Context, limit int) ([]model.Event, error)
}

// AgendaHandler handles upcoming and popular event requests.
type AgendaHandler struct {
	deps     AgendaDependencies
	maxLimit int
}

// NewAgendaHandler creates an agenda handler. maxLimit caps the days
// and limit parameters.
func NewAgendaHandler(deps AgendaDependencies, maxLimit int) *AgendaHandler {
	return &AgendaHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetAgenda handles GET /agenda?days=N. Without days the
// service's configured default window applies.
func (h *AgendaHandler) HandleGetAgenda(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_agenda"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: days must be a positive integer", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: days above %d", op, ErrBadRequest, h.maxLimit))
			return
		}
		days = n
	}

	events, err := h.deps.Upcoming(r.Context(), days)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// HandleGetPopular handles GET /popular?limit=N.
func (h *AgendaHandler) HandleGetPopular(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_popular"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: limit must be a positive integer", op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: limit above %d", op, ErrBadRequest, h.maxLimit))
		return
	}

	events, err := h.deps.Popular(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}
