// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
)

// AppearancesHandler handles fill-in appearance add/remove requests.
type AppearancesHandler struct {
	deps PlayerDependencies
}

// NewAppearancesHandler creates a new appearances handler.
func NewAppearancesHandler(deps PlayerDependencies) *AppearancesHandler {
	return &AppearancesHandler{deps: deps}
}

// appearanceRequest mirrors POST /api/players/{id}/appearances.
type appearanceRequest struct {
	Team  string `json:"team"`
	Games int    `json:"games"`
}

// Handle dispatches appearance routes below /api/players/{id}/appearances.
func (h *AppearancesHandler) Handle(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	const op = "api.appearances"
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req appearanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKindErr(op, ErrBadRequest, err))
			return
		}
		if req.Team == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKindErr(op, ErrBadRequest, ErrMissingTeam))
			return
		}
		p, err := h.deps.AddAppearance(r.Context(), id, req.Team, req.Games)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	case len(rest) == 1 && rest[0] != "" && r.Method == http.MethodDelete:
		if err := h.deps.RemoveAppearance(r.Context(), id, rest[0]); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	default:
		http.NotFound(w, r)
	}
}
