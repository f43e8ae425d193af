// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/orangehat/meetcal/internal/domain/conflict"
)

// ConflictDependencies defines the interface for conflict listing.
type ConflictDependencies interface {
	Conflicts(ctx context.Context) ([]conflict.Pair, error)
}

// ConflictHandler handles conflict listing requests.
type ConflictHandler struct {
	deps ConflictDependencies
}

// NewConflictHandler creates a conflict handler.
func NewConflictHandler(deps ConflictDependencies) *ConflictHandler {
	return &ConflictHandler{deps: deps}
}

// HandleGetConflicts handles GET /conflicts.
func (h *ConflictHandler) HandleGetConflicts(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_conflicts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	pairs, err := h.deps.Conflicts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, pairs)
}
