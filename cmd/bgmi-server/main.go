package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/httpapi"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/terminal"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/bootstrap"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/buildinfo"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultFile(), "Fichier de configuration TOML")
	addr := flag.String("addr", "", "Adresse d'écoute (ex: 127.0.0.1:8888)")
	dbPath := flag.String("db", "", "Chemin SQLite (ex: ~/.bgmi/bgmi.db)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := zerolog.New(os.Stdout).Level(bootstrap.LogLevel(cfg.LogLevel)).
		With().Timestamp().Str("app", "bgmi-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Str("db", cfg.DBPath).Msg("starting")

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := bootstrap.Open(shutdownCtx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open environment")
	}
	defer func() { _ = env.Close() }()

	// Scheduler: vérifie les bangumi suivis à intervalle régulier.
	scheduler := app.NewUpdateScheduler(logger.With().Str("component", "scheduler").Logger(), env.Updates, cfg.UpdateSchedule)
	go func() {
		if err := scheduler.Run(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("update scheduler failed")
		}
	}()

	// Notifier: garde les derniers épisodes trouvés par le scheduler.
	notifier := app.NewUpdateNotifier(logger.With().Str("component", "notifier").Logger(), env.Bus, 0)
	notifier.Start(shutdownCtx)

	render := terminal.DefaultRenderConfig()
	render.ColumnWidth = cfg.ColumnWidth
	render.MaxPerRow = cfg.MaxPerRow
	render.TerminalWidth = cfg.ColumnWidth * cfg.MaxPerRow

	srv := httpapi.NewServer(logger, httpapi.Services{
		Calendar: env.Calendar,
		Website:  env.Website,
		Follow:   env.Follow,
		Updates:  env.Updates,
		Notifier: notifier,
		Bus:      env.Bus,
		Render:   render,
		MaxPage:  cfg.MaxPage,
	})
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
