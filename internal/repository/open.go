package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nwoyi/staffing-api/internal/config"
	"github.com/Nwoyi/staffing-api/internal/persistence"
)

// Open builds the staff repository selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (StaffRepository, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory, "":
		logger.Info("using in-memory staff store")
		return NewMemoryStaffRepository(), nil

	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return NewPostgresStaffRepository(pg.PoolHandle()), nil

	case config.StoreRedis:
		rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return NewRedisStaffRepository(rdb.Client, cfg.Redis.KeyPrefix), nil

	case config.StoreSQLite:
		db, err := persistence.NewSQLite(cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		repo, err := NewSQLiteStaffRepository(db.DB)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}
