package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/clubops/rosterd/internal/adapters/repository/migrations"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/mutate"
)

const migrationTable = "schema_migrations"

// SQLiteStore persists the roster in SQLite via the pure Go driver.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the roster database at path and applies
// embedded migrations. Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty database path", ErrUnavailable)
	}
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}
	// The roster is edited by a single planner; one connection avoids
	// SQLITE_BUSY churn under the WAL.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("%w: ensure migration table: %v", ErrUnavailable, err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("%w: read migrations: %v", ErrUnavailable, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var done int
		err := db.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: check migration %s: %v", ErrUnavailable, name, err)
		}
		content, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("%w: read migration %s: %v", ErrUnavailable, name, err)
		}
		if _, err := db.Exec(upSection(string(content))); err != nil {
			return fmt.Errorf("%w: apply migration %s: %v", ErrUnavailable, name, err)
		}
		if _, err := db.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("%w: record migration %s: %v", ErrUnavailable, name, err)
		}
	}
	return nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down".
func upSection(content string) string {
	up := strings.Index(content, "-- +migrate Up")
	if up == -1 {
		return content
	}
	rest := content[up+len("-- +migrate Up"):]
	if down := strings.Index(rest, "-- +migrate Down"); down != -1 {
		rest = rest[:down]
	}
	return rest
}

func (s *SQLiteStore) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

const playerColumns = `id, name, main_team, status, position, team_2026, recruit, notes,
	email, mobile, submitted_at, survey, created_at, updated_at`

func scanPlayer(row interface{ Scan(...any) error }) (model.Player, error) {
	var p model.Player
	var recruit int
	var survey string
	err := row.Scan(&p.ID, &p.Name, &p.MainTeam, &p.Status, &p.Position, &p.Team2026,
		&recruit, &p.Notes, &p.Email, &p.Mobile, &p.SubmittedAt, &survey,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Player{}, err
	}
	p.Recruit = recruit != 0
	if survey != "" && survey != "{}" {
		if err := json.Unmarshal([]byte(survey), &p.Survey); err != nil {
			return model.Player{}, fmt.Errorf("decode survey for %s: %w", p.ID, err)
		}
	}
	return p, nil
}

func (s *SQLiteStore) loadAppearances(ctx context.Context, ids []string, byID map[string]*model.Player) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, len(ids))
	marks := make([]string, len(ids))
	for i, id := range ids {
		args[i] = id
		marks[i] = "?"
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, team, games, is_main FROM squad_appearances
		 WHERE player_id IN (`+strings.Join(marks, ",")+`)
		 ORDER BY games DESC, team`, args...)
	if err != nil {
		return fmt.Errorf("%w: load appearances: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, team string
		var games, isMain int
		if err := rows.Scan(&id, &team, &games, &isMain); err != nil {
			return fmt.Errorf("%w: scan appearance: %v", ErrUnavailable, err)
		}
		if p, ok := byID[id]; ok {
			p.Appearances = append(p.Appearances, model.Appearance{Team: team, Games: games, IsMain: isMain != 0})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterate appearances: %v", ErrUnavailable, err)
	}
	return nil
}

// ListPlayers returns players matching filter with their appearances,
// ordered by name.
func (s *SQLiteStore) ListPlayers(ctx context.Context, filter Filter) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players`
	var clauses []string
	var args []any
	if filter.Team != "" {
		clauses = append(clauses, `id IN (SELECT player_id FROM squad_appearances WHERE team = ?)`)
		args = append(args, filter.Team)
	}
	if filter.RecruitsOnly {
		clauses = append(clauses, `recruit = 1`)
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY name COLLATE NOCASE`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan player: %v", ErrUnavailable, err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate players: %v", ErrUnavailable, err)
	}

	byID := make(map[string]*model.Player, len(players))
	ids := make([]string, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
		ids[i] = players[i].ID
	}
	if err := s.loadAppearances(ctx, ids, byID); err != nil {
		return nil, err
	}
	return players, nil
}

// GetPlayer returns one player with appearances.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, ErrNotFound
	}
	if err != nil {
		return model.Player{}, fmt.Errorf("%w: get player: %v", ErrUnavailable, err)
	}
	byID := map[string]*model.Player{p.ID: &p}
	if err := s.loadAppearances(ctx, []string{p.ID}, byID); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// PutPlayer upserts a full player row with its appearances.
func (s *SQLiteStore) PutPlayer(ctx context.Context, p model.Player) error {
	survey := "{}"
	if len(p.Survey) > 0 {
		b, err := json.Marshal(p.Survey)
		if err != nil {
			return fmt.Errorf("encode survey for %s: %w", p.ID, err)
		}
		survey = string(b)
	}
	created := p.CreatedAt
	if created == "" {
		created = s.stamp()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name, main_team = excluded.main_team,
			status = excluded.status, position = excluded.position,
			team_2026 = excluded.team_2026, recruit = excluded.recruit,
			notes = excluded.notes, email = excluded.email,
			mobile = excluded.mobile, submitted_at = excluded.submitted_at,
			survey = excluded.survey, updated_at = excluded.updated_at`,
		p.ID, p.Name, p.MainTeam, p.Status, p.Position, p.Team2026,
		boolToInt(p.Recruit), p.Notes, p.Email, p.Mobile, p.SubmittedAt, survey,
		created, s.stamp()); err != nil {
		return fmt.Errorf("%w: upsert player: %v", ErrUnavailable, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM squad_appearances WHERE player_id = ?`, p.ID); err != nil {
		return fmt.Errorf("%w: clear appearances: %v", ErrUnavailable, err)
	}
	for _, a := range p.Appearances {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO squad_appearances (player_id, team, games, is_main) VALUES (?, ?, ?, ?)`,
			p.ID, a.Team, a.Games, boolToInt(a.IsMain)); err != nil {
			return fmt.Errorf("%w: insert appearance: %v", ErrUnavailable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrUnavailable, err)
	}
	return nil
}

// UpdatePlayer applies an already validated patch in one statement.
func (s *SQLiteStore) UpdatePlayer(ctx context.Context, id string, patch mutate.Patch) (model.Player, error) {
	sets := []string{`updated_at = ?`}
	args := []any{s.stamp()}
	if patch.Status != nil {
		sets = append(sets, `status = ?`)
		args = append(args, *patch.Status)
	}
	if patch.Position != nil {
		sets = append(sets, `position = ?`)
		args = append(args, *patch.Position)
	}
	if patch.Team2026 != nil {
		sets = append(sets, `team_2026 = ?`)
		args = append(args, *patch.Team2026)
	}
	if patch.Notes != nil {
		sets = append(sets, `notes = ?`)
		args = append(args, *patch.Notes)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, `UPDATE players SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return model.Player{}, fmt.Errorf("%w: update player: %v", ErrUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return model.Player{}, ErrNotFound
	}
	return s.GetPlayer(ctx, id)
}

// AddAppearance persists a validated fill-in appearance.
func (s *SQLiteStore) AddAppearance(ctx context.Context, id, team string, games int) (model.Player, error) {
	if _, err := s.GetPlayer(ctx, id); err != nil {
		return model.Player{}, err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO squad_appearances (player_id, team, games, is_main) VALUES (?, ?, ?, 0)`,
		id, team, games); err != nil {
		return model.Player{}, fmt.Errorf("%w: add appearance: %v", ErrUnavailable, err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE players SET updated_at = ? WHERE id = ?`, s.stamp(), id); err != nil {
		return model.Player{}, fmt.Errorf("%w: touch player: %v", ErrUnavailable, err)
	}
	return s.GetPlayer(ctx, id)
}

// RemoveAppearance deletes a fill-in appearance.
func (s *SQLiteStore) RemoveAppearance(ctx context.Context, id, team string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM squad_appearances WHERE player_id = ? AND team = ? AND is_main = 0`, id, team)
	if err != nil {
		return fmt.Errorf("%w: remove appearance: %v", ErrUnavailable, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE players SET updated_at = ? WHERE id = ?`, s.stamp(), id); err != nil {
		return fmt.Errorf("%w: touch player: %v", ErrUnavailable, err)
	}
	return nil
}

// Count returns the number of players tracked.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
