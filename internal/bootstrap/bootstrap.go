package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/fintrackhq/backend/internal/cache"
	"github.com/fintrackhq/backend/internal/config"
	"github.com/fintrackhq/backend/internal/store"
	"github.com/fintrackhq/backend/pkg/logger"
)

// Bootstrap holds the process-lifetime clients. They are initialized once at
// startup and injected into handlers; nothing else reaches for globals.
type Bootstrap struct {
	Log   *slog.Logger
	DB    *sql.DB
	Cache cache.Client

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewJSONHandler)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return bs, err
	}
	bs.DB = db
	bs.closers = append(bs.closers, db.Close)

	if err := store.Migrate(applicationCtx, db); err != nil {
		return bs, err
	}

	bs.Cache = InitCache(applicationCtx, cfg, bs)

	return bs, nil
}

func (bs *Bootstrap) Close() {
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			bs.Log.Warn("close failed", "error", err)
		}
	}
}
