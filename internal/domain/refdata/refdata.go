// Package refdata holds the reference lists (teams, statuses, positions)
// validation and derivation run against. The lists are injected from
// configuration rather than hard-coded: the status vocabulary changed
// between app revisions and must be swappable without a code change.
package refdata

// Set is an immutable bundle of the club's reference lists. The team order
// is significant: the list runs strongest side first, and that grading is
// the tie-break when the importer picks a main team.
type Set struct {
	teams     []string
	statuses  []string
	positions []string

	teamIdx     map[string]int
	statusIdx   map[string]struct{}
	positionIdx map[string]struct{}
}

// New builds a Set from ordered reference lists. Inputs are copied.
func New(teams, statuses, positions []string) *Set {
	s := &Set{
		teams:       append([]string(nil), teams...),
		statuses:    append([]string(nil), statuses...),
		positions:   append([]string(nil), positions...),
		teamIdx:     make(map[string]int, len(teams)),
		statusIdx:   make(map[string]struct{}, len(statuses)),
		positionIdx: make(map[string]struct{}, len(positions)),
	}
	for i, t := range teams {
		s.teamIdx[t] = i
	}
	for _, st := range statuses {
		s.statusIdx[st] = struct{}{}
	}
	for _, p := range positions {
		s.positionIdx[p] = struct{}{}
	}
	return s
}

// Teams returns the ordered team list (copy).
func (s *Set) Teams() []string { return append([]string(nil), s.teams...) }

// Statuses returns the ordered status list (copy).
func (s *Set) Statuses() []string { return append([]string(nil), s.statuses...) }

// Positions returns the ordered position list (copy).
func (s *Set) Positions() []string { return append([]string(nil), s.positions...) }

// ValidTeam reports whether team is in the team list.
func (s *Set) ValidTeam(team string) bool {
	_, ok := s.teamIdx[team]
	return ok
}

// ValidStatus reports whether status is in the status list.
func (s *Set) ValidStatus(status string) bool {
	_, ok := s.statusIdx[status]
	return ok
}

// ValidPosition reports whether position is in the position list.
func (s *Set) ValidPosition(position string) bool {
	_, ok := s.positionIdx[position]
	return ok
}

// TeamGrade returns the grade rank of team within the ordered team list,
// higher meaning a stronger side. Unknown teams rank below every known one.
func (s *Set) TeamGrade(team string) int {
	if i, ok := s.teamIdx[team]; ok {
		return len(s.teams) - i
	}
	return -1
}
