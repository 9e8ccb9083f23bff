package roster

import "github.com/clubops/rosterd/internal/domain/model"

// TeamSummary aggregates one team's reference-season numbers.
type TeamSummary struct {
	MainSquad       int            `json:"main_squad"`
	FillIns         int            `json:"fill_ins"`
	StatusBreakdown map[string]int `json:"status_breakdown"`
}

// Summary is the dashboard aggregate across all teams.
type Summary struct {
	Teams        map[string]TeamSummary `json:"teams"`
	TotalMain    int                    `json:"total_main"`
	TotalFillIns int                    `json:"total_fill_ins"`
}

// DashboardSummary computes per-team main-squad and fill-in counts plus a
// status breakdown of each team's main squad. Statuses absent from a team
// are omitted from the breakdown, never zero-valued.
func DashboardSummary(players []model.Player, teams []string) Summary {
	out := Summary{Teams: make(map[string]TeamSummary, len(teams))}
	for _, team := range teams {
		ts := TeamSummary{StatusBreakdown: make(map[string]int)}
		for i := range players {
			p := &players[i]
			if p.MainTeam == team {
				if a, ok := p.MainAppearance(); ok && a.Team == team {
					ts.MainSquad++
					if p.Status != "" {
						ts.StatusBreakdown[p.Status]++
					}
					continue
				}
			}
			if a, ok := p.AppearanceFor(team); ok && !a.IsMain && p.MainTeam != team {
				ts.FillIns++
			}
		}
		out.Teams[team] = ts
		out.TotalMain += ts.MainSquad
		out.TotalFillIns += ts.FillIns
	}
	return out
}

// StatusShare returns a status count as a fraction of the main squad.
// An empty squad uses a denominator of 1 so callers render 0% instead of
// dividing by zero.
func (t TeamSummary) StatusShare(status string) float64 {
	den := t.MainSquad
	if den == 0 {
		den = 1
	}
	return float64(t.StatusBreakdown[status]) / float64(den)
}
