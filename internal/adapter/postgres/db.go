package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modulearn/backend/internal/domain"
)

// DB wraps the connection pool and carries the degraded mode: when the pool
// could not be created at startup the application still runs, repository
// reads return empty results and writes fail with domain.ErrUnavailable.
type DB struct {
	pool *pgxpool.Pool
}

// NewDB wraps a pool. A nil pool produces a degraded (unavailable) DB.
func NewDB(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Available reports whether a backing pool exists.
func (d *DB) Available() bool {
	return d != nil && d.pool != nil
}

// Querier returns the transaction bound to ctx if present, otherwise the pool.
// Callers must check Available first.
func (d *DB) Querier(ctx context.Context) Querier {
	return QuerierFromCtx(ctx, d.pool)
}

// Ping checks connectivity. Returns domain.ErrUnavailable in degraded mode.
func (d *DB) Ping(ctx context.Context) error {
	if !d.Available() {
		return domain.ErrUnavailable
	}
	return d.pool.Ping(ctx)
}

// Close releases the pool. Safe to call in degraded mode.
func (d *DB) Close() {
	if d.Available() {
		d.pool.Close()
	}
}
