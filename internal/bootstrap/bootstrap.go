// Package bootstrap wires storage, sources and services from a Config.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/anilist"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/filelock"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/netprobe"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/nyaa"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/script"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/source"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/config"
	"github.com/rs/zerolog"
)

type Env struct {
	Config config.Config
	Logger zerolog.Logger

	DB  *sqlite.DB
	Bus *memorybus.Bus

	Bangumi   *sqlite.BangumiRepository
	Filters   *sqlite.FiltersRepository
	Subtitles *sqlite.SubtitlesRepository
	Scripts   *script.Loader

	Website  *app.Website
	Calendar *app.CalendarService
	Follow   *app.FollowService
	Updates  *app.UpdateService
}

// Open creates the data directory if needed and builds every service.
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "" && cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	env := &Env{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Bus:       memorybus.New(),
		Bangumi:   sqlite.NewBangumiRepository(db.SQL),
		Filters:   sqlite.NewFiltersRepository(db.SQL),
		Subtitles: sqlite.NewSubtitlesRepository(db.SQL),
		Scripts:   script.NewLoader(logger.With().Str("component", "scripts").Logger(), cfg.ScriptsDir),
	}

	src := source.Composite{
		Calendar: anilist.New(cfg.AniListURL, cfg.RequestsPerSecond),
		Releases: nyaa.New(logger.With().Str("component", "nyaa").Logger(), cfg.NyaaURL, cfg.RequestsPerSecond),
	}
	probe := netprobe.New(logger, strings.TrimSpace(cfg.ProbeURL), netprobe.DefaultTimeout)
	lock := filelock.New(cfg.LockPath)

	env.Website = app.NewWebsite(logger, src, env.Bangumi, env.Filters, env.Subtitles)
	env.Calendar = app.NewCalendarService(logger, env.Website, env.Bangumi, env.Subtitles, env.Scripts, probe, lock)
	env.Follow = app.NewFollowService(env.Bangumi, env.Filters, env.Bus)
	env.Updates = app.NewUpdateService(logger.With().Str("component", "update").Logger(), env.Website, env.Bangumi, env.Bus, cfg.MaxPage)
	return env, nil
}

func (e *Env) Close() error {
	e.Bus.Close()
	return e.DB.Close()
}

// LogLevel parses a level name, defaulting to info.
func LogLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
