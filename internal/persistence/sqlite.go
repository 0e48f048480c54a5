package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Nwoyi/staffing-api/internal/config"
)

// SQLite wraps a gorm handle on a local SQLite database.
type SQLite struct {
	DB *gorm.DB
}

// NewSQLite opens (creating if needed) the database file at cfg.Path.
func NewSQLite(cfg config.SQLiteConfig, logger *zap.Logger) (*SQLite, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path not provided")
	}

	gormLog := gormlogger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps in-memory databases shared.
	sqlDB.SetMaxOpenConns(1)

	logger.Info("opened sqlite database", zap.String("path", cfg.Path))
	return &SQLite{DB: db}, nil
}

// Close releases the underlying connection.
func (s *SQLite) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("sqlite database not configured")
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
