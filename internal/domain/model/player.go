// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
)

// Appearance records one player's participation for one team in the
// reference season.
type Appearance struct {
	Team   string `json:"team"`    // team the appearance belongs to
	Games  int    `json:"games"`   // games played, never negative
	IsMain bool   `json:"is_main"` // true iff this is the player's primary-squad record
}

// Player is a club member tracked through seasonal planning.
// MainTeam, Position and Team2026 are empty when unset.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MainTeam string `json:"main_team"` // primary-squad team in the reference season
	Status   string `json:"status"`    // next-season intent, one of the configured statuses
	Position string `json:"position"`
	Team2026 string `json:"team_2026"` // planned next-season team assignment
	Recruit  bool   `json:"is_recruit"`
	Notes    string `json:"notes"`

	Appearances []Appearance `json:"appearances"`

	// Survey/contact passthrough. Read-only for the core; carried so the
	// presentation layer can render them.
	Email       string            `json:"email,omitempty"`
	Mobile      string            `json:"mobile,omitempty"`
	SubmittedAt string            `json:"submitted_at,omitempty"`
	Survey      map[string]string `json:"survey,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Intrinsic invariant violations reported by Validate.
var (
	ErrMultipleMain    = errors.New("more than one main appearance")
	ErrMainTeamMissing = errors.New("main appearance team does not match main team")
	ErrDuplicateTeam   = errors.New("duplicate appearance team")
	ErrNegativeGames   = errors.New("negative games count")
)

// Validate checks the invariants that hold regardless of reference data:
// at most one main appearance whose team equals MainTeam, pairwise-distinct
// appearance teams, and non-negative game counts.
func (p *Player) Validate() error {
	seen := make(map[string]struct{}, len(p.Appearances))
	mains := 0
	for _, a := range p.Appearances {
		if _, dup := seen[a.Team]; dup {
			return fmt.Errorf("player %s team %s: %w", p.ID, a.Team, ErrDuplicateTeam)
		}
		seen[a.Team] = struct{}{}
		if a.Games < 0 {
			return fmt.Errorf("player %s team %s: %w", p.ID, a.Team, ErrNegativeGames)
		}
		if a.IsMain {
			mains++
			if mains > 1 {
				return fmt.Errorf("player %s: %w", p.ID, ErrMultipleMain)
			}
			if a.Team != p.MainTeam {
				return fmt.Errorf("player %s team %s: %w", p.ID, a.Team, ErrMainTeamMissing)
			}
		}
	}
	return nil
}

// MainAppearance returns the player's main appearance, or false when the
// player has none.
func (p *Player) MainAppearance() (Appearance, bool) {
	for _, a := range p.Appearances {
		if a.IsMain {
			return a, true
		}
	}
	return Appearance{}, false
}

// AppearanceFor returns the player's appearance for team, or false.
func (p *Player) AppearanceFor(team string) (Appearance, bool) {
	for _, a := range p.Appearances {
		if a.Team == team {
			return a, true
		}
	}
	return Appearance{}, false
}

// HasAppearance reports whether the player holds any appearance for team.
func (p *Player) HasAppearance(team string) bool {
	_, ok := p.AppearanceFor(team)
	return ok
}

// Clone returns a deep copy so derivations and stores never alias
// caller-held slices or maps.
func (p *Player) Clone() Player {
	out := *p
	if p.Appearances != nil {
		out.Appearances = make([]Appearance, len(p.Appearances))
		copy(out.Appearances, p.Appearances)
	}
	if p.Survey != nil {
		out.Survey = make(map[string]string, len(p.Survey))
		for k, v := range p.Survey {
			out.Survey[k] = v
		}
	}
	return out
}

// ClonePlayers deep-copies a player collection.
func ClonePlayers(players []Player) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	for i := range players {
		out[i] = players[i].Clone()
	}
	return out
}
