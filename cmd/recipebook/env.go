package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/cache"
	"github.com/kerbaras/recipebook/pkg/config"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/logging"
	"github.com/kerbaras/recipebook/pkg/services"
	"github.com/kerbaras/recipebook/pkg/session"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// env is everything a command needs, built from the loaded config.
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	repo     *data.Repository
	sessions *session.Store
	ctrl     *services.RecipeController

	closers []io.Closer
}

// setupEnv wires config, logging, storage and the backend client. The TUI
// owns the terminal, so toFile sends logs to the configured log file.
func setupEnv(ctx context.Context, toFile bool) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	logCfg := logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Output: os.Stderr}
	if toFile {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f)
		logCfg.Output = f
		logCfg.Pretty = false
	}
	e.logger = logging.Setup(logCfg)

	repo, err := data.NewDuckDBRepository(cfg.Data.Path)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open library: %w", err)
	}
	e.repo = repo
	e.closers = append(e.closers, repo)
	e.sessions = session.NewStore(repo)

	opts := []api.Option{
		api.WithTokens(e.sessions),
		api.WithLogger(logging.NewLogger("api")),
	}
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			e.logger.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, response cache disabled")
			_ = rdb.Close()
		} else {
			e.closers = append(e.closers, rdb)
			opts = append(opts, api.WithCache(cache.NewManager(rdb, cfg.Cache.TTL)))
		}
	}

	apiCfg := api.DefaultConfig(cfg.API.BaseURL)
	apiCfg.Timeout = cfg.API.Timeout
	apiCfg.RateLimit = cfg.API.RateLimit
	apiCfg.Burst = cfg.API.Burst
	apiCfg.Retry.MaxAttempts = cfg.API.MaxRetries
	apiCfg.Retry.InitialBackoff = cfg.API.InitialBackoff

	client, err := api.New(apiCfg, opts...)
	if err != nil {
		e.Close()
		return nil, err
	}

	source := sources.NewRecipeAPI(client, e.sessions)
	exporter := services.NewExporter(cfg.Export.Dir)
	e.ctrl = services.NewRecipeController(source, repo, e.sessions, exporter)
	return e, nil
}

func (e *env) Close() {
	if e.ctrl != nil {
		e.ctrl.Close()
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			e.logger.Warn().Err(err).Msg("Close failed")
		}
	}
}
