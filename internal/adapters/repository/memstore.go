package repository

import (
	"context"
	"sync"
	"time"

	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
	"github.com/clubops/rosterd/internal/domain/roster"
)

// MemStore is an in-memory Store guarded by a RWMutex. It backs tests and
// ephemeral deployments; production uses the SQLite store.
type MemStore struct {
	mu      sync.RWMutex
	players map[string]model.Player
	now     func() time.Time
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithPlayers preloads the store with a fixture collection.
func WithPlayers(players []model.Player) MemOption {
	return func(s *MemStore) {
		for _, p := range players {
			s.players[p.ID] = p.Clone()
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		players: make(map[string]model.Player),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemStore) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ListPlayers returns a deep-copied snapshot matching filter, name-sorted.
func (s *MemStore) ListPlayers(_ context.Context, filter Filter) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		if filter.Team != "" && !p.HasAppearance(filter.Team) {
			continue
		}
		if filter.RecruitsOnly && !p.Recruit {
			continue
		}
		out = append(out, p.Clone())
	}
	roster.SortByName(out)
	return out, nil
}

// GetPlayer returns one player by id.
func (s *MemStore) GetPlayer(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p.Clone(), nil
}

// PutPlayer upserts a full player row.
func (s *MemStore) PutPlayer(_ context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p.Clone()
	if stored.CreatedAt == "" {
		stored.CreatedAt = s.stamp()
	}
	stored.UpdatedAt = s.stamp()
	s.players[stored.ID] = stored
	return nil
}

// UpdatePlayer applies an already validated patch.
func (s *MemStore) UpdatePlayer(_ context.Context, id string, patch mutate.Patch) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
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
	out.UpdatedAt = s.stamp()
	s.players[id] = out
	return out.Clone(), nil
}

// AddAppearance persists a validated fill-in appearance.
func (s *MemStore) AddAppearance(_ context.Context, id, team string, games int) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	out := p.Clone()
	out.Appearances = append(out.Appearances, model.Appearance{Team: team, Games: games})
	out.UpdatedAt = s.stamp()
	s.players[id] = out
	return out.Clone(), nil
}

// RemoveAppearance deletes a fill-in appearance.
func (s *MemStore) RemoveAppearance(_ context.Context, id, team string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return ErrNotFound
	}
	out := p.Clone()
	kept := out.Appearances[:0]
	found := false
	for _, a := range out.Appearances {
		if a.Team == team {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrNotFound
	}
	out.Appearances = kept
	out.UpdatedAt = s.stamp()
	s.players[id] = out
	return nil
}

// Count returns the number of players tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
