// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/roster"
	"github.com/clubops/rosterd/internal/domain/types"
)

// PlanningDependencies defines the interface for derivation views.
type PlanningDependencies interface {
	TeamPlanning(ctx context.Context, team string) (types.PlanningView, error)
	Dashboard(ctx context.Context) (roster.Summary, error)
	Goalkeepers(ctx context.Context) ([]model.Player, error)
	Recruits(ctx context.Context) ([]model.Player, error)
}

// PlanningHandler handles derivation view requests.
type PlanningHandler struct {
	deps PlanningDependencies
}

// NewPlanningHandler creates a new planning handler.
func NewPlanningHandler(deps PlanningDependencies) *PlanningHandler {
	return &PlanningHandler{deps: deps}
}

// HandleTeamPlanning handles GET /api/planning/{team} requests.
func (h *PlanningHandler) HandleTeamPlanning(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	team := strings.TrimPrefix(r.URL.Path, "/api/planning/")
	if team == "" || strings.Contains(team, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	view, err := h.deps.TeamPlanning(r.Context(), team)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if view.MainSquad == nil {
		view.MainSquad = []model.Player{}
	}
	if view.FillIns == nil {
		view.FillIns = []model.Player{}
	}
	if view.Planned2026 == nil {
		view.Planned2026 = []model.Player{}
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDashboard handles GET /api/dashboard requests.
func (h *PlanningHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, err := h.deps.Dashboard(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleGoalkeepers handles GET /api/goalkeepers requests.
func (h *PlanningHandler) HandleGoalkeepers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players, err := h.deps.Goalkeepers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleRecruits handles GET /api/recruits requests.
func (h *PlanningHandler) HandleRecruits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players, err := h.deps.Recruits(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}
