// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	repository "github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
	"github.com/clubops/rosterd/internal/domain/refdata"
	"github.com/clubops/rosterd/internal/domain/roster"
	"github.com/clubops/rosterd/internal/domain/types"
	"github.com/clubops/rosterd/pkg/logger"
	"github.com/clubops/rosterd/pkg/metrics"
)

// Service wires the roster store, reference lists, and the derivation and
// mutation rules behind a single façade consumed by the HTTP API.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	ref   *refdata.Set

	dbPath string

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets a pre-built store, bypassing Start's own store selection.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithReference sets the reference lists used for validation and views.
func WithReference(ref *refdata.Set) Option {
	return func(s *Service) {
		if ref != nil {
			s.ref = ref
		}
	}
}

// WithDBPath selects the SQLite database path. Empty keeps the in-memory
// store.
func WithDBPath(path string) Option {
	return func(s *Service) {
		s.dbPath = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		ref: refdata.New(nil, nil, nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and readies the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		if s.dbPath != "" {
			st, err := repository.OpenSQLite(s.dbPath)
			if err != nil {
				return err
			}
			s.store = st
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.dbPath))
		} else {
			s.store = repository.NewMemStore()
			s.logger.Info(ctx, "using in-memory store")
		}
	}

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.Int("teams", len(s.ref.Teams())),
		logger.Int("statuses", len(s.ref.Statuses())),
	)
	return nil
}

// Stop closes the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

// Reference returns the injected reference lists.
func (s *Service) Reference() *refdata.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ref
}

func (s *Service) snapshot(ctx context.Context) ([]model.Player, error) {
	start := time.Now()
	players, err := s.store.ListPlayers(ctx, repository.Filter{})
	metrics.RecordStoreOpDuration("list_players", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return players, nil
}

// Players returns players matching the store filter and name query.
func (s *Service) Players(ctx context.Context, filter repository.Filter, nameFilter string) ([]model.Player, error) {
	start := time.Now()
	players, err := s.store.ListPlayers(ctx, filter)
	metrics.RecordStoreOpDuration("list_players", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordStoreError()
		return nil, err
	}
	return roster.AllPlayers(players, nameFilter), nil
}

// Player returns one player by id.
func (s *Service) Player(ctx context.Context, id string) (model.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

// TeamPlanning derives the three squad lists for one team.
func (s *Service) TeamPlanning(ctx context.Context, team string) (types.PlanningView, error) {
	if !s.ref.ValidTeam(team) {
		return types.PlanningView{}, &mutate.Error{Kind: mutate.ErrUnknownTeam, Field: "team", Value: team}
	}
	players, err := s.snapshot(ctx)
	if err != nil {
		return types.PlanningView{}, err
	}
	start := time.Now()
	view := types.PlanningView{
		Team:        team,
		MainSquad:   roster.TeamMainSquad(players, team),
		FillIns:     roster.TeamFillIns(players, team),
		Planned2026: roster.Planned2026Squad(players, team),
	}
	metrics.RecordDerivationDuration("team_planning", float64(time.Since(start).Milliseconds()))
	return view, nil
}

// Dashboard derives the per-team summary across all teams.
func (s *Service) Dashboard(ctx context.Context) (roster.Summary, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return roster.Summary{}, err
	}
	start := time.Now()
	summary := roster.DashboardSummary(players, s.ref.Teams())
	metrics.RecordDerivationDuration("dashboard", float64(time.Since(start).Milliseconds()))
	return summary, nil
}

// Goalkeepers derives the club-wide goalkeeper list.
func (s *Service) Goalkeepers(ctx context.Context) ([]model.Player, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return roster.Goalkeepers(players), nil
}

// Recruits derives the recruit list.
func (s *Service) Recruits(ctx context.Context) ([]model.Player, error) {
	players, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return roster.Recruits(players), nil
}

// rejectionReason maps a validation error to a metrics label.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, mutate.ErrInvalidEnum):
		return "invalid_enum"
	case errors.Is(err, mutate.ErrUnknownTeam):
		return "unknown_team"
	case errors.Is(err, mutate.ErrDuplicateAppearance):
		return "duplicate_appearance"
	case errors.Is(err, mutate.ErrCannotRemoveMain):
		return "cannot_remove_main"
	case errors.Is(err, mutate.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// mutatePlayer loads the player, runs validate, and persists the returned
// patch only when validation passes, so a rejected edit never reaches the
// store.
func (s *Service) mutatePlayer(ctx context.Context, op, id string, validate func(model.Player) (mutate.Patch, error)) (model.Player, error) {
	current, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordMutationRejected(op, "not_found")
			return model.Player{}, &mutate.Error{Kind: mutate.ErrNotFound, PlayerID: id, Field: "id", Value: id}
		}
		metrics.RecordStoreError()
		return model.Player{}, err
	}
	patch, err := validate(current)
	if err != nil {
		metrics.RecordMutationRejected(op, rejectionReason(err))
		return model.Player{}, err
	}
	updated, err := s.store.UpdatePlayer(ctx, id, patch)
	if err != nil {
		metrics.RecordStoreError()
		return model.Player{}, err
	}
	metrics.RecordMutationApplied(op)
	return updated, nil
}

// SetStatus replaces a player's next-season status.
func (s *Service) SetStatus(ctx context.Context, id, status string) (model.Player, error) {
	return s.mutatePlayer(ctx, "set_status", id, func(p model.Player) (mutate.Patch, error) {
		if _, err := mutate.SetStatus(p, s.ref, status); err != nil {
			return mutate.Patch{}, err
		}
		return mutate.Patch{Status: &status}, nil
	})
}

// SetPosition replaces a player's position. Empty clears it.
func (s *Service) SetPosition(ctx context.Context, id, position string) (model.Player, error) {
	return s.mutatePlayer(ctx, "set_position", id, func(p model.Player) (mutate.Patch, error) {
		if _, err := mutate.SetPosition(p, s.ref, position); err != nil {
			return mutate.Patch{}, err
		}
		return mutate.Patch{Position: &position}, nil
	})
}

// SetTeam2026 replaces a player's planned assignment. Empty clears it.
func (s *Service) SetTeam2026(ctx context.Context, id, team string) (model.Player, error) {
	return s.mutatePlayer(ctx, "set_team_2026", id, func(p model.Player) (mutate.Patch, error) {
		if _, err := mutate.SetTeam2026(p, s.ref, team); err != nil {
			return mutate.Patch{}, err
		}
		return mutate.Patch{Team2026: &team}, nil
	})
}

// PatchPlayer applies a combined edit: every field validates or none land.
func (s *Service) PatchPlayer(ctx context.Context, id string, patch mutate.Patch) (model.Player, error) {
	return s.mutatePlayer(ctx, "patch_player", id, func(p model.Player) (mutate.Patch, error) {
		if _, err := mutate.ApplyPatch(p, s.ref, patch); err != nil {
			return mutate.Patch{}, err
		}
		return patch, nil
	})
}

// AddAppearance records a fill-in appearance for a player.
func (s *Service) AddAppearance(ctx context.Context, id, team string, games int) (model.Player, error) {
	const op = "add_appearance"
	current, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordMutationRejected(op, "not_found")
			return model.Player{}, &mutate.Error{Kind: mutate.ErrNotFound, PlayerID: id, Field: "id", Value: id}
		}
		metrics.RecordStoreError()
		return model.Player{}, err
	}
	if _, err := mutate.AddAppearance(current, s.ref, team, games); err != nil {
		metrics.RecordMutationRejected(op, rejectionReason(err))
		return model.Player{}, err
	}
	if games < 0 {
		games = 0
	}
	updated, err := s.store.AddAppearance(ctx, id, team, games)
	if err != nil {
		metrics.RecordStoreError()
		return model.Player{}, err
	}
	metrics.RecordMutationApplied(op)
	return updated, nil
}

// RemoveAppearance deletes a fill-in appearance.
func (s *Service) RemoveAppearance(ctx context.Context, id, team string) error {
	const op = "remove_appearance"
	current, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordMutationRejected(op, "not_found")
			return &mutate.Error{Kind: mutate.ErrNotFound, PlayerID: id, Field: "id", Value: id}
		}
		metrics.RecordStoreError()
		return err
	}
	if _, err := mutate.RemoveAppearance(current, team); err != nil {
		metrics.RecordMutationRejected(op, rejectionReason(err))
		return err
	}
	if err := s.store.RemoveAppearance(ctx, id, team); err != nil {
		metrics.RecordStoreError()
		return err
	}
	metrics.RecordMutationApplied(op)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"teams":     len(s.ref.Teams()),
		"statuses":  len(s.ref.Statuses()),
		"positions": len(s.ref.Positions()),
	}
	if s.started {
		total := s.store.Count(ctx)
		stats["players"] = total
		metrics.UpdatePlayersTotal(total)
		if recruits, err := s.store.ListPlayers(ctx, repository.Filter{RecruitsOnly: true}); err == nil {
			stats["recruits"] = len(recruits)
			metrics.UpdateRecruitsTotal(len(recruits))
		}
	}
	return stats
}
