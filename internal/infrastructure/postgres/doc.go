// Package postgres provides PostgreSQL connectivity for the inventory
// backend via a pgx connection pool.
//
// The backend is optional: when postgres.enabled is false in config.yaml,
// Connect returns ErrDisabled and the inventory module falls back to the
// local SQLite database. EnsureSchema issues the idempotent CREATE TABLE IF
// NOT EXISTS statements for productos and ventas.
package postgres
