package roster

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/clubops/rosterd/internal/domain/model"
)

// SortByName orders players by name, locale-aware and case-insensitive.
// Every view that claims "sorted by name" goes through here so the ordering
// rule cannot drift between views. The input slice is sorted in place.
func SortByName(players []model.Player) {
	// Collators are not safe for concurrent use; a fresh one per call keeps
	// derivations callable from multiple readers.
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(players, func(i, j int) bool {
		return c.CompareString(players[i].Name, players[j].Name) < 0
	})
}
