package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/teensteam/namecup/internal/config"
	"github.com/teensteam/namecup/internal/db"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/service"
	"github.com/teensteam/namecup/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	sessionManager := scs.New()
	sessionManager.Lifetime = 24 * time.Hour
	sessionManager.Store = sqlite3store.New(database.DB)

	st := store.NewStore(database)
	app := &application{
		tournaments: service.NewTournamentService(st, m, service.WithLogger(slog.Default())),
		candidates:  service.NewCandidateService(st, m, service.WithLogger(slog.Default())),
		sessions:    sessionManager,
		registry:    registry,
		corsOrigins: cfg.CORSOrigins,
	}

	log.Printf("Server starting on http://localhost%s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), newRouter(app)); err != nil {
		log.Fatal(err)
	}
}
