package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abdielLopezpy/aulasql/internal/infrastructure/config"
)

// Default timeouts for PostgreSQL operations.
const (
	defaultConnectTimeout = 10 * time.Second
	defaultPingTimeout    = 5 * time.Second
)

// Client wraps a pgx connection pool for the PostgreSQL inventory backend.
type Client struct {
	pool *pgxpool.Pool
	cfg  config.PostgresConfig
}

// Connect establishes a connection pool to the PostgreSQL server.
//
// The connection URL is built from the discrete host/port/database/user
// fields in config.yaml; the password comes from config or the
// AULASQL_POSTGRES_PASSWORD environment variable.
//
// Parameters:
//   - ctx: Context for connection establishment
//   - cfg: PostgreSQL configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If PostgreSQL is disabled or connection fails
func Connect(ctx context.Context, cfg config.PostgresConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}

	return &Client{
		pool: pool,
		cfg:  cfg,
	}, nil
}

// Pool returns the underlying pgx connection pool.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// HealthCheck verifies the PostgreSQL connection is alive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.pool == nil {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	if err := c.pool.Ping(checkCtx); err != nil {
		return fmt.Errorf("postgres health check failed: %w", err)
	}
	return nil
}

// Close shuts down the connection pool. Safe to call more than once.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}
