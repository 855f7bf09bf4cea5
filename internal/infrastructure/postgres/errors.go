package postgres

import "errors"

// Sentinel errors for PostgreSQL operations, checkable with errors.Is().
var (
	// ErrNotConnected indicates the client has no live connection pool.
	ErrNotConnected = errors.New("postgres: not connected")

	// ErrConnectionFailed indicates the initial connection attempt failed.
	ErrConnectionFailed = errors.New("postgres: connection failed")

	// ErrDisabled indicates the PostgreSQL backend is disabled in config.
	ErrDisabled = errors.New("postgres: disabled in configuration")
)
