// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/clubops/rosterd/internal/domain/refdata"
)

// MetaDependencies exposes the configured reference lists.
type MetaDependencies interface {
	Reference() *refdata.Set
}

// MetaHandler serves the team/status/position reference lists.
type MetaHandler struct {
	deps MetaDependencies
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(deps MetaDependencies) *MetaHandler {
	return &MetaHandler{deps: deps}
}

// HandleTeams handles GET /api/teams requests.
func (h *MetaHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Reference().Teams())
}

// HandleStatuses handles GET /api/statuses requests.
func (h *MetaHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Reference().Statuses())
}

// HandlePositions handles GET /api/positions requests.
func (h *MetaHandler) HandlePositions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Reference().Positions())
}
