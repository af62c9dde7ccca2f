// Package repository stores the card catalog in PostgreSQL.
package repository

import (
	"context"
	"fmt"

	"github.com/innovation-engine/innovation-go/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DB wraps the connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB connects to PostgreSQL and verifies the connection.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns),
	)
	return &DB{pool: pool, logger: logger}, nil
}

// Close releases every connection.
func (db *DB) Close() {
	db.pool.Close()
}

// Stats returns pool statistics.
func (db *DB) Stats() *pgxpool.Stat {
	return db.pool.Stat()
}

// Pool exposes the underlying pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

const schema = `
CREATE TABLE IF NOT EXISTS cards (
	name        TEXT PRIMARY KEY,
	color       TEXT NOT NULL,
	age         INTEGER NOT NULL CHECK (age BETWEEN 1 AND 10),
	effect_type TEXT NOT NULL DEFAULT '',
	icon0       TEXT NOT NULL DEFAULT '',
	icon1       TEXT NOT NULL DEFAULT '',
	icon2       TEXT NOT NULL DEFAULT '',
	icon3       TEXT NOT NULL DEFAULT '',
	text0       TEXT NOT NULL DEFAULT '',
	text1       TEXT NOT NULL DEFAULT '',
	text2       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS special_achievements (
	name        TEXT PRIMARY KEY,
	criteria    TEXT NOT NULL DEFAULT '',
	alternative TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the catalog tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}
	return nil
}
