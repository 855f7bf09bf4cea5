package postgres

import (
	"context"
	"fmt"
)

// schemaDDL is the idempotent schema for the inventory tables on PostgreSQL.
// CREATE TABLE IF NOT EXISTS makes the menu's "create tables" option safe to
// pick repeatedly; the SERIAL sequences and the foreign key from ventas to
// productos are managed entirely by the server.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS productos (
    id SERIAL PRIMARY KEY,
    nombre VARCHAR(100) NOT NULL,
    precio NUMERIC(10, 2) NOT NULL,
    stock INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ventas (
    id SERIAL PRIMARY KEY,
    producto_id INTEGER NOT NULL REFERENCES productos(id),
    cantidad INTEGER NOT NULL,
    fecha_venta TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ventas_producto ON ventas(producto_id);
CREATE INDEX IF NOT EXISTS idx_ventas_fecha ON ventas(fecha_venta);
`

// EnsureSchema creates the inventory tables if they do not already exist.
// Running it against an up-to-date database changes nothing.
func (c *Client) EnsureSchema(ctx context.Context) error {
	if c.pool == nil {
		return ErrNotConnected
	}
	if _, err := c.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("creating inventory schema: %w", err)
	}
	return nil
}
