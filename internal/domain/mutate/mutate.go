// Package mutate validates and applies the roster mutation operations.
// Each operation takes a player value, validates against the injected
// reference lists, and returns an updated copy; the input is never touched,
// so a failed validation can never leave a half-mutated entity behind.
package mutate

import (
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/refdata"
)

// SetStatus replaces the player's next-season status. The status must be a
// member of the configured status list.
func SetStatus(p model.Player, ref *refdata.Set, status string) (model.Player, error) {
	if !ref.ValidStatus(status) {
		return model.Player{}, newError(ErrInvalidEnum, p.ID, "status", status)
	}
	out := p.Clone()
	out.Status = status
	return out, nil
}

// SetPosition replaces the player's position. Empty clears it; a non-empty
// value must be a member of the configured position list.
func SetPosition(p model.Player, ref *refdata.Set, position string) (model.Player, error) {
	if position != "" && !ref.ValidPosition(position) {
		return model.Player{}, newError(ErrInvalidEnum, p.ID, "position", position)
	}
	out := p.Clone()
	out.Position = position
	return out, nil
}

// SetTeam2026 replaces the planned next-season assignment. Empty clears it.
// The assignment drives Planned2026Squad membership alone; no appearance is
// created or touched, and the player's status is deliberately not
// cross-checked (a "Not returning" player may still hold an assignment).
func SetTeam2026(p model.Player, ref *refdata.Set, team string) (model.Player, error) {
	if team != "" && !ref.ValidTeam(team) {
		return model.Player{}, newError(ErrUnknownTeam, p.ID, "team_2026", team)
	}
	out := p.Clone()
	out.Team2026 = team
	return out, nil
}

// AddAppearance appends a fill-in appearance for team. The player may hold
// at most one appearance per team; the main appearance counts, so adding
// the player's own main team is rejected as a duplicate.
func AddAppearance(p model.Player, ref *refdata.Set, team string, games int) (model.Player, error) {
	if !ref.ValidTeam(team) {
		return model.Player{}, newError(ErrUnknownTeam, p.ID, "team", team)
	}
	if p.HasAppearance(team) {
		return model.Player{}, newError(ErrDuplicateAppearance, p.ID, "team", team)
	}
	if games < 0 {
		games = 0
	}
	out := p.Clone()
	out.Appearances = append(out.Appearances, model.Appearance{Team: team, Games: games, IsMain: false})
	return out, nil
}

// RemoveAppearance deletes the player's fill-in appearance for team. The
// main appearance is immutable through this path.
func RemoveAppearance(p model.Player, team string) (model.Player, error) {
	a, ok := p.AppearanceFor(team)
	if !ok {
		return model.Player{}, newError(ErrNotFound, p.ID, "team", team)
	}
	if a.IsMain {
		return model.Player{}, newError(ErrCannotRemoveMain, p.ID, "team", team)
	}
	out := p.Clone()
	kept := out.Appearances[:0]
	for _, app := range out.Appearances {
		if app.Team != team {
			kept = append(kept, app)
		}
	}
	out.Appearances = kept
	return out, nil
}

// Patch is a combined single-save edit. Nil fields are left untouched.
type Patch struct {
	Status   *string
	Position *string
	Team2026 *string
	Notes    *string
}

// ApplyPatch validates every set field before committing any of them, so a
// combined save either lands whole or not at all.
func ApplyPatch(p model.Player, ref *refdata.Set, patch Patch) (model.Player, error) {
	if patch.Status != nil && !ref.ValidStatus(*patch.Status) {
		return model.Player{}, newError(ErrInvalidEnum, p.ID, "status", *patch.Status)
	}
	if patch.Position != nil && *patch.Position != "" && !ref.ValidPosition(*patch.Position) {
		return model.Player{}, newError(ErrInvalidEnum, p.ID, "position", *patch.Position)
	}
	if patch.Team2026 != nil && *patch.Team2026 != "" && !ref.ValidTeam(*patch.Team2026) {
		return model.Player{}, newError(ErrUnknownTeam, p.ID, "team_2026", *patch.Team2026)
	}
	out := p.Clone()
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if patch.Position != nil {
		out.Position = *patch.Position
	}
	if patch.Team2026 != nil {
		out.Team2026 = *patch.Team2026
	}
	if patch.Notes != nil {
		out.Notes = *patch.Notes
	}
	return out, nil
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Position == nil && p.Team2026 == nil && p.Notes == nil
}
