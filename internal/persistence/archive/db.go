// Package archive provides an optional durable store for completed
// battle recordings, so a deployment that wants battles queryable after
// the fact (e.g. a ladder server) isn't stuck re-reading JSON files off
// disk. Spec §6.4 calls persistence "optional" and implementation-
// defined; this sub-package is the durable-backend option, grounded on
// rdtc8822-debug-L1JGO-Whale/internal/persist's pgx+goose pairing.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Config mirrors the subset of rdtc8822's config.DatabaseConfig this
// package actually reads; the host program's own config layer supplies
// it (see internal/config).
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps a pgx connection pool, same shape as persist.DB.
type DB struct {
	Pool *pgxpool.Pool
	log  *logrus.Entry
}

func NewDB(ctx context.Context, cfg Config, log *logrus.Entry) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("archive: parse dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("archive: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("archive: ping: %w", err)
	}

	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
