// Package roster derives team-scoped views from the flat player collection.
// Every function is pure: it takes a snapshot, returns fresh slices, and
// never mutates its input, so readers can derive concurrently.
package roster

import (
	"strings"

	"github.com/clubops/rosterd/internal/domain/model"
)

// TeamMainSquad returns the players whose main team is team and who hold a
// main appearance for it. A player whose MainTeam is set without a matching
// main appearance is inconsistent data and is filtered out rather than
// reported as an error.
func TeamMainSquad(players []model.Player, team string) []model.Player {
	var out []model.Player
	for i := range players {
		p := &players[i]
		if p.MainTeam != team {
			continue
		}
		if a, ok := p.MainAppearance(); ok && a.Team == team {
			out = append(out, p.Clone())
		}
	}
	return out
}

// TeamFillIns returns the players holding a non-main appearance for team
// whose main team is elsewhere. Appearance teams are unique per player, so
// the result is disjoint with TeamMainSquad for the same team.
func TeamFillIns(players []model.Player, team string) []model.Player {
	var out []model.Player
	for i := range players {
		p := &players[i]
		if p.MainTeam == team {
			continue
		}
		if a, ok := p.AppearanceFor(team); ok && !a.IsMain {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Planned2026Squad returns the players assigned to team for next season,
// sorted by name. Membership follows Team2026 alone; prior-season history
// and status are not consulted.
func Planned2026Squad(players []model.Player, team string) []model.Player {
	var out []model.Player
	for i := range players {
		if players[i].Team2026 == team && team != "" {
			out = append(out, players[i].Clone())
		}
	}
	SortByName(out)
	return out
}

// AllPlayers returns the players whose name contains filter as a
// case-insensitive substring. An empty filter matches everyone. Input order
// is preserved; column sorting is the caller's concern.
func AllPlayers(players []model.Player, filter string) []model.Player {
	needle := strings.ToLower(strings.TrimSpace(filter))
	var out []model.Player
	for i := range players {
		if needle == "" || strings.Contains(strings.ToLower(players[i].Name), needle) {
			out = append(out, players[i].Clone())
		}
	}
	return out
}

// Recruits returns the players with no prior-season history.
func Recruits(players []model.Player) []model.Player {
	var out []model.Player
	for i := range players {
		if players[i].Recruit {
			out = append(out, players[i].Clone())
		}
	}
	return out
}

// PositionGoalkeeper is the position value the goalkeeper view keys on.
const PositionGoalkeeper = "GK"

// Goalkeepers returns the players whose position is GK, sorted by name.
func Goalkeepers(players []model.Player) []model.Player {
	var out []model.Player
	for i := range players {
		if players[i].Position == PositionGoalkeeper {
			out = append(out, players[i].Clone())
		}
	}
	SortByName(out)
	return out
}
