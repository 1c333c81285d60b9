// Package database provides support for access the database.
package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueViolation is the PostgreSQL error code raised when an insert or
// update breaks a unique constraint.
const UniqueViolation = "23505"

// Config represents configuration properties for using the database.
//
// Notes for configuring the connection pool:
//
// 1. As a rule of thumb, a MaxConns value should be set explicitly. This should be
// comfortably below any hard limits on the number of connections imposed by the
// database and infrastructure, and maybe we can think keeping it fairly low
// to act as a rudimentary throttle. Ideally we should tweak this value based on the
// results of benchmarking and load-testing.
//
// 2. Idle connections that are not frequently re-used consume resources on the
// database server for no benefit. You should generally set a MaxConnIdleTime value
// to remove idle connections that haven't been used for a long time.
//
// 3. It's probably OK to leave MaxConnLifetime as unlimited, unless your database imposes a hard
// limit on connection lifetime, or you need it specifically to facilitate something like gracefully
// swapping databases.
type Config struct {
	DSN             string
	MaxConns        int           // limit on the number of pooled connections (in-use + idle)
	MaxConnIdleTime time.Duration // how long a connection can sit idle before it is closed
}

// OpenConnection knows how to open a database connection pool based on the
// configuration. The pool settings must be applied to the parsed config
// before the pool is constructed; mutating an already-built pool's config
// has no effect.
func OpenConnection(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
