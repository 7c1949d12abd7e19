// Package commands holds the cobra subcommands of the estate-crm binary.
package commands

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wichananm65/estate-crm/internal/config"
	"github.com/wichananm65/estate-crm/internal/database"
	"github.com/wichananm65/estate-crm/internal/kvstore"
	"github.com/wichananm65/estate-crm/internal/logging"
)

// env is what every command needs before doing its work.
type env struct {
	cfg   config.Config
	lggr  *zap.SugaredLogger
	db    *sql.DB
	redis *redis.Client
	cache kvstore.Backend
}

// loadConfig is swapped in tests.
var loadConfig = config.Load

func newEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	lggr, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &env{cfg: cfg, lggr: lggr}, nil
}

func (e *env) openDB(ctx context.Context) error {
	if err := e.cfg.RequireDatabase(); err != nil {
		return err
	}
	db, err := database.Open(ctx, e.cfg.DatabaseURL, e.lggr.Named("database"))
	if err != nil {
		return err
	}
	e.db = db
	if e.cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		e.lggr.Infow("migrations applied")
	}
	return nil
}

// openCache connects to Redis when REDIS_ADDR is set and falls back to the
// process-local backend otherwise.
func (e *env) openCache(ctx context.Context) error {
	if e.cfg.RedisAddr == "" {
		e.cache = kvstore.NewMemoryBackend()
		e.lggr.Infow("using in-memory cache")
		return nil
	}
	client, err := kvstore.Dial(ctx, e.cfg.RedisAddr, e.cfg.RedisPassword, e.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("connect redis %s: %w", e.cfg.RedisAddr, err)
	}
	e.redis = client
	e.cache = kvstore.NewRedisBackend(client)
	return nil
}

func (e *env) close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.lggr.Sync()
}
