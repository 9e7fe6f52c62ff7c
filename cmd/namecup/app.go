package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/config"
	"github.com/teensteam/namecup/internal/db"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/service"
	"github.com/teensteam/namecup/internal/store"
	"github.com/urfave/cli/v2"
)

// env is what every command works against. It is opened in Before and closed
// in After.
type env struct {
	database    *sqlx.DB
	tournaments *service.TournamentService
	candidates  *service.CandidateService
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "namecup",
		Usage: "run a name world cup from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the SQLite database",
				EnvVars: []string{"NAMECUP_DB_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				EnvVars: []string{"NAMECUP_LOG_LEVEL"},
				Value:   "warn",
			},
		},
		Before: func(c *cli.Context) error {
			return e.open(c)
		},
		After: func(c *cli.Context) error {
			if e.database != nil {
				return e.database.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			candidatesCommand(e),
			tournamentCommand(e),
		},
	}
}

func (e *env) open(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if path := c.String("db"); path != "" {
		cfg.DBPath = path
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.String("log-level")))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	if err := db.RunMigrations(database.DB); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Counters are only scraped by the web server; the CLI keeps its own.
	m := metrics.New(prometheus.NewRegistry())
	st := store.NewStore(database)

	e.database = database
	e.tournaments = service.NewTournamentService(st, m)
	e.candidates = service.NewCandidateService(st, m)
	return nil
}

// userError turns a problem the user can fix into a plain message with a
// non-zero exit code.
func userError(err error) error {
	switch {
	case err == nil:
		return nil
	case service.IsValidation(err),
		errors.Is(err, bracket.ErrPrecondition),
		errors.Is(err, service.ErrNoTournament),
		errors.Is(err, service.ErrCandidateNotFound):
		return cli.Exit(err.Error(), 1)
	}
	return err
}
