// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
	"github.com/clubops/rosterd/internal/domain/refdata"
	"github.com/clubops/rosterd/internal/domain/roster"
	"github.com/clubops/rosterd/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose roster views.
	Players(ctx context.Context, filter repository.Filter, nameFilter string) ([]model.Player, error)
	Player(ctx context.Context, id string) (model.Player, error)
	TeamPlanning(ctx context.Context, team string) (types.PlanningView, error)
	Dashboard(ctx context.Context) (roster.Summary, error)
	Goalkeepers(ctx context.Context) ([]model.Player, error)
	Recruits(ctx context.Context) ([]model.Player, error)

	// Mutations are validated against the reference lists before any
	// store write.
	PatchPlayer(ctx context.Context, id string, patch mutate.Patch) (model.Player, error)
	AddAppearance(ctx context.Context, id, team string, games int) (model.Player, error)
	RemoveAppearance(ctx context.Context, id, team string) error

	// Reference exposes the configured team/status/position lists.
	Reference() *refdata.Set
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	playersHandler  *PlayersHandler
	planningHandler *PlanningHandler
	metaHandler     *MetaHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		playersHandler:  NewPlayersHandler(deps),
		planningHandler: NewPlanningHandler(deps),
		metaHandler:     NewMetaHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/teams", MetricsMiddleware(s.metaHandler.HandleTeams, "teams"))
	mux.HandleFunc("/api/statuses", MetricsMiddleware(s.metaHandler.HandleStatuses, "statuses"))
	mux.HandleFunc("/api/positions", MetricsMiddleware(s.metaHandler.HandlePositions, "positions"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(s.planningHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("/api/goalkeepers", MetricsMiddleware(s.planningHandler.HandleGoalkeepers, "goalkeepers"))
	mux.HandleFunc("/api/recruits", MetricsMiddleware(s.planningHandler.HandleRecruits, "recruits"))
	mux.HandleFunc("/api/planning/", MetricsMiddleware(s.planningHandler.HandleTeamPlanning, "planning"))
	mux.HandleFunc("/api/players", MetricsMiddleware(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/api/players/", MetricsMiddleware(s.playersHandler.HandlePlayerSubtree, "player"))
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

// writeDomainError translates mutation and store errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mutate.ErrInvalidEnum):
		writeError(w, http.StatusBadRequest, "invalid_enum", err)
	case errors.Is(err, mutate.ErrUnknownTeam):
		writeError(w, http.StatusBadRequest, "unknown_team", err)
	case errors.Is(err, mutate.ErrDuplicateAppearance):
		writeError(w, http.StatusConflict, "duplicate_appearance", err)
	case errors.Is(err, mutate.ErrCannotRemoveMain):
		writeError(w, http.StatusBadRequest, "cannot_remove_main", err)
	case errors.Is(err, mutate.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
