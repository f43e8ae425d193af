// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
)

// FiltersDependencies defines the interface for filter-choice listing.
type FiltersDependencies interface {
	FilterChoices(ctx context.Context) (categories, locations []string, err error)
}

// FiltersHandler serves the distinct values filter controls offer.
type FiltersHandler struct {
	deps FiltersDependencies
}

// NewFiltersHandler creates a filters handler.
func NewFiltersHandler(deps FiltersDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

type filtersResponse struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

// HandleGetFilters handles GET /filters.
func (h *FiltersHandler) HandleGetFilters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_filters"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	categories, locations, err := h.deps.FilterChoices(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{Categories: categories, Locations: locations})
}
