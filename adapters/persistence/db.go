package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/career-os/internal/config"
	"github.com/khoahotran/career-os/pkg/logger"
)

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DBSource hands out the shared record store handle.
type DBSource interface {
	Acquire(ctx context.Context) (DBTX, error)
}

// Connector owns the process-wide Postgres pool. Nothing is dialed until the
// first Acquire; the pool is then reused by every operation until Close.
// A failed first connect is not cached, so the next Acquire retries.
type Connector struct {
	dsn      string
	maxConns int32
	logger   logger.Logger

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewConnector(cfg config.Config, log logger.Logger) *Connector {
	return &Connector{dsn: cfg.DB.DSN, maxConns: cfg.DB.MaxConns, logger: log}
}

func (c *Connector) Acquire(ctx context.Context) (DBTX, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		return c.pool, nil
	}

	poolCfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database connection string: %w", err)
	}
	if c.maxConns > 0 {
		poolCfg.MaxConns = c.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("do not create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	c.logger.Info("Connect PostgreSQL successfully.")
	c.pool = pool
	return c.pool, nil
}

// Close releases the pool. Only called on process shutdown.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pool != nil {
		c.pool.Close()
		c.pool = nil
		c.logger.Info("Closed PostgreSQL pool.")
	}
}

type fixedSource struct {
	db DBTX
}

// FixedSource wraps an already opened handle, e.g. a test pool.
func FixedSource(db DBTX) DBSource {
	return fixedSource{db: db}
}

func (s fixedSource) Acquire(context.Context) (DBTX, error) {
	return s.db, nil
}
