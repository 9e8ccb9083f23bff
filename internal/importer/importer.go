// Package importer seeds the roster store from the club's season-end
// spreadsheets: a squads CSV (who played where, and how often) and a survey
// CSV (who answered the returning-players form). Rows are merged by
// normalised player name.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	repository "github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/domain/model"
	"github.com/clubops/rosterd/internal/domain/refdata"
	"github.com/clubops/rosterd/pkg/logger"
)

// Importer merges the two season-end CSVs and writes players through the
// store.
type Importer struct {
	store         repository.Store
	ref           *refdata.Set
	defaultStatus string
	newID         func() string
	logger        logger.Logger
}

// Option applies a configuration option to the Importer.
type Option func(*Importer)

// WithDefaultStatus sets the status given to every imported player.
func WithDefaultStatus(status string) Option {
	return func(i *Importer) {
		if status != "" {
			i.defaultStatus = status
		}
	}
}

// WithIDGenerator overrides the player id source.
func WithIDGenerator(gen func() string) Option {
	return func(i *Importer) {
		if gen != nil {
			i.newID = gen
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(i *Importer) {
		if l != nil {
			i.logger = l
		}
	}
}

// New creates an Importer writing through store, validating against ref.
func New(store repository.Store, ref *refdata.Set, opts ...Option) *Importer {
	imp := &Importer{
		store:         store,
		ref:           ref,
		defaultStatus: "Not heard from",
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// Result summarises an import run.
type Result struct {
	Players  int // players written, recruits included
	Recruits int // survey respondents with no squad history
	Skipped  int // squad rows dropped (unknown team or unusable name)
}

// squadRow is one parsed line of the squads CSV.
type squadRow struct {
	name   string
	team   string
	games  int
	isMain bool // row came from the main-squad section, not fill-ins
}

// Run parses both CSVs and writes the merged players. The survey may be nil
// when only squad data is available.
func (i *Importer) Run(ctx context.Context, squads io.Reader, survey io.Reader) (Result, error) {
	rows, skipped, err := i.parseSquads(squads)
	if err != nil {
		return Result{}, err
	}

	var responses map[string]surveyResponse
	if survey != nil {
		responses, err = parseSurvey(survey)
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{Skipped: skipped}

	// Group squad rows per player.
	grouped := make(map[string][]squadRow)
	var order []string
	for _, row := range rows {
		key := Normalize(row.name)
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], row)
	}

	for _, key := range order {
		playerRows := grouped[key]
		p := i.buildPlayer(playerRows)
		if resp, ok := responses[key]; ok {
			applySurvey(&p, resp)
			delete(responses, key)
		}
		if err := p.Validate(); err != nil {
			return res, fmt.Errorf("import %s: %w", p.Name, err)
		}
		if err := i.store.PutPlayer(ctx, p); err != nil {
			return res, err
		}
		res.Players++
	}

	// Whoever answered the survey without any squad history is a recruit.
	for _, resp := range responses {
		p := model.Player{
			ID:      i.newID(),
			Name:    resp.name,
			Status:  i.defaultStatus,
			Recruit: true,
		}
		applySurvey(&p, resp)
		if err := i.store.PutPlayer(ctx, p); err != nil {
			return res, err
		}
		res.Players++
		res.Recruits++
	}

	if i.logger != nil {
		i.logger.Info(ctx, "roster import finished",
			logger.Int("players", res.Players),
			logger.Int("recruits", res.Recruits),
			logger.Int("skipped", res.Skipped),
		)
	}
	return res, nil
}

// parseSquads reads the squads CSV: header team,player,games,main.
func (i *Importer) parseSquads(r io.Reader) ([]squadRow, int, error) {
	if r == nil {
		return nil, 0, fmt.Errorf("squads reader is required")
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read squads csv: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, fmt.Errorf("squads csv is empty")
	}

	idx, err := headerIndex(records[0], "team", "player", "games", "main")
	if err != nil {
		return nil, 0, err
	}

	var rows []squadRow
	skipped := 0
	for _, rec := range records[1:] {
		name := strings.TrimSpace(rec[idx["player"]])
		team := strings.TrimSpace(rec[idx["team"]])
		if name == "" || !i.ref.ValidTeam(team) {
			skipped++
			continue
		}
		games, _ := strconv.Atoi(strings.TrimSpace(rec[idx["games"]]))
		if games < 0 {
			games = 0
		}
		rows = append(rows, squadRow{
			name:   name,
			team:   team,
			games:  games,
			isMain: parseBool(rec[idx["main"]]),
		})
	}
	return rows, skipped, nil
}

// buildPlayer assembles one player from their squad rows, picking the main
// team by highest games, tie-broken by team grade.
func (i *Importer) buildPlayer(rows []squadRow) model.Player {
	mainTeam := i.determineMainTeam(rows)

	p := model.Player{
		ID:       i.newID(),
		Name:     rows[0].name,
		MainTeam: mainTeam,
		Status:   i.defaultStatus,
	}
	for _, row := range rows {
		p.Appearances = append(p.Appearances, model.Appearance{
			Team:   row.team,
			Games:  row.games,
			IsMain: row.team == mainTeam && row.isMain,
		})
	}
	return p
}

// determineMainTeam prefers main-section rows; when a player appears in no
// main section it falls back to every row. Highest games wins, grade breaks
// ties.
func (i *Importer) determineMainTeam(rows []squadRow) string {
	candidates := make([]squadRow, 0, len(rows))
	for _, row := range rows {
		if row.isMain {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		candidates = rows
	}
	best := candidates[0]
	for _, row := range candidates[1:] {
		if row.games > best.games ||
			(row.games == best.games && i.ref.TeamGrade(row.team) > i.ref.TeamGrade(best.team)) {
			best = row
		}
	}
	return best.team
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "main":
		return true
	default:
		return false
	}
}

func headerIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("squads csv missing column %q", col)
		}
	}
	return idx, nil
}
