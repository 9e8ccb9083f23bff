// Package repository defines the roster store interface and errors.
package repository

import (
	"context"

	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
)

// Filter narrows ListPlayers. Zero value means everyone.
type Filter struct {
	// Team keeps players holding any appearance for the team.
	Team string
	// RecruitsOnly keeps players with no prior-season history.
	RecruitsOnly bool
}

// Store provides read/write access to players and their appearances.
// Implementations surface I/O failures as ErrUnavailable; the core performs
// no retries on top.
type Store interface {
	// ListPlayers returns a snapshot of players matching filter,
	// ordered by name.
	ListPlayers(ctx context.Context, filter Filter) ([]model.Player, error)

	// GetPlayer returns one player by id.
	// Returns ErrNotFound if the id is unknown.
	GetPlayer(ctx context.Context, id string) (model.Player, error)

	// PutPlayer upserts a full player row with its appearances.
	// Used by the importer and tests; mutations go through UpdatePlayer.
	PutPlayer(ctx context.Context, p model.Player) error

	// UpdatePlayer applies an already validated patch and returns the
	// updated player.
	UpdatePlayer(ctx context.Context, id string, patch mutate.Patch) (model.Player, error)

	// AddAppearance persists a validated fill-in appearance and returns
	// the updated player.
	AddAppearance(ctx context.Context, id, team string, games int) (model.Player, error)

	// RemoveAppearance deletes a fill-in appearance.
	RemoveAppearance(ctx context.Context, id, team string) error

	// Count returns the number of players tracked.
	Count(ctx context.Context) int
}
