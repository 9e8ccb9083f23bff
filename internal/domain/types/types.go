// Package types contains common types used across the application
package types

import "github.com/clubops/rosterd/internal/domain/model"

// PlanningView bundles the three squad lists a planner works from for one
// team: who played for it last season, who filled in, and who is pencilled
// in for next season.
type PlanningView struct {
	Team        string         `json:"team"`
	MainSquad   []model.Player `json:"main_squad_2025"`
	FillIns     []model.Player `json:"fill_ins_2025"`
	Planned2026 []model.Player `json:"squad_2026"`
}
