package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/clubops/rosterd/internal/adapters/repository"
	"github.com/clubops/rosterd/internal/config"
	"github.com/clubops/rosterd/internal/domain/refdata"
	"github.com/clubops/rosterd/internal/importer"
	"github.com/clubops/rosterd/pkg/logger"
)

const defaultImportTimeout = 2 * time.Minute

func main() {
	var (
		squadsFile = flag.String("squads", "", "Squads CSV (team,player,games,main)")
		surveyFile = flag.String("survey", "", "Survey responses CSV (optional)")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
	)
	flag.Parse()

	if *squadsFile == "" {
		os.Stderr.WriteString("usage: seed-roster -squads squads.csv [-survey responses.csv] [-db roster.db]\n")
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), defaultImportTimeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if cfg.DBPath == "" {
		os.Stderr.WriteString("a database path is required: pass -db or set ROSTERD_DB_PATH\n")
		os.Exit(2)
	}

	store, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Error(ctx, "open database", logger.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	squads, err := os.Open(*squadsFile)
	if err != nil {
		log.Error(ctx, "open squads csv", logger.Error(err))
		os.Exit(1)
	}
	defer squads.Close()

	var survey *os.File
	if *surveyFile != "" {
		survey, err = os.Open(*surveyFile)
		if err != nil {
			log.Error(ctx, "open survey csv", logger.Error(err))
			os.Exit(1)
		}
		defer survey.Close()
	}

	ref := refdata.New(cfg.Teams, cfg.Statuses, cfg.Positions)
	imp := importer.New(store, ref,
		importer.WithDefaultStatus(cfg.DefaultStatus),
		importer.WithLogger(log),
	)

	res, err := runImport(ctx, imp, squads, survey)
	if err != nil {
		log.Error(ctx, "import failed", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "seeded roster",
		logger.String("db", cfg.DBPath),
		logger.Int("players", res.Players),
		logger.Int("recruits", res.Recruits),
		logger.Int("skipped", res.Skipped),
	)
}

// runImport avoids handing Run a non-nil io.Reader interface wrapping a nil
// file when no survey was given.
func runImport(ctx context.Context, imp *importer.Importer, squads, survey *os.File) (importer.Result, error) {
	if survey == nil {
		return imp.Run(ctx, squads, nil)
	}
	return imp.Run(ctx, squads, survey)
}
