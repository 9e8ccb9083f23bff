// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	repository "github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
)

// PlayerDependencies defines the interface for player operations.
type PlayerDependencies interface {
	Players(ctx context.Context, filter repository.Filter, nameFilter string) ([]model.Player, error)
	Player(ctx context.Context, id string) (model.Player, error)
	PatchPlayer(ctx context.Context, id string, patch mutate.Patch) (model.Player, error)
	AddAppearance(ctx context.Context, id, team string, games int) (model.Player, error)
	RemoveAppearance(ctx context.Context, id, team string) error
}

// PlayersHandler handles player list and single-player requests.
type PlayersHandler struct {
	deps        PlayerDependencies
	appearances *AppearancesHandler
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps, appearances: NewAppearancesHandler(deps)}
}

// HandlePlayers handles GET /api/players?team=&recruits=&q= requests.
func (h *PlayersHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_players"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	filter := repository.Filter{
		Team:         q.Get("team"),
		RecruitsOnly: q.Get("recruits") == "true" || q.Get("recruits") == "1",
	}
	players, err := h.deps.Players(r.Context(), filter, q.Get("q"))
	if err != nil {
		writeDomainError(w, WrapKind(op, err))
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, players)
}

// playerPatchRequest mirrors the editable subset of a player row. Absent
// fields are left untouched; all present fields commit together or not at
// all.
type playerPatchRequest struct {
	Status   *string `json:"status"`
	Position *string `json:"position"`
	Team2026 *string `json:"team_2026"`
	Notes    *string `json:"notes"`
}

// HandlePlayerSubtree dispatches /api/players/{id} and
// /api/players/{id}/appearances[/{team}].
func (h *PlayersHandler) HandlePlayerSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/players/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	switch {
	case len(parts) == 1:
		h.handlePlayer(w, r, id)
	case len(parts) >= 2 && parts[1] == "appearances":
		h.appearances.Handle(w, r, id, parts[2:])
	default:
		http.NotFound(w, r)
	}
}

func (h *PlayersHandler) handlePlayer(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.player"
	switch r.Method {
	case http.MethodGet:
		p, err := h.deps.Player(r.Context(), id)
		if err != nil {
			writeDomainError(w, WrapKind(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut, http.MethodPatch:
		var req playerPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKindErr(op, ErrBadRequest, err))
			return
		}
		patch := mutate.Patch{
			Status:   req.Status,
			Position: req.Position,
			Team2026: req.Team2026,
			Notes:    req.Notes,
		}
		if patch.Empty() {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKindErr(op, ErrBadRequest, ErrEmptyPatch))
			return
		}
		p, err := h.deps.PatchPlayer(r.Context(), id, patch)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		http.NotFound(w, r)
	}
}
