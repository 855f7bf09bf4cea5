package inventario

import (
	"context"
	"fmt"
)

// Sample dataset: a small electronics catalog with three months of sales
// (January to March 2024). The sale rows reference products by their
// position in productosEjemplo, which become IDs 1..8 after the identity
// reset.
type productoEjemplo struct {
	nombre string
	precio string
	stock  int
}

type ventaEjemplo struct {
	productoID int64
	cantidad   int
	fecha      string // YYYY-MM-DD
}

var productosEjemplo = []productoEjemplo{
	{"Laptop Gaming", "1299.99", 5},
	{"Monitor 24'", "199.99", 15},
	{"Teclado Mecánico", "89.99", 20},
	{"Mouse Gamer", "49.99", 30},
	{"Auriculares RGB", "79.99", 12},
	{"Webcam HD", "59.99", 8},
	{"Mousepad XL", "19.99", 25},
	{"Hub USB", "29.99", 18},
}

var ventasEjemplo = []ventaEjemplo{
	// Enero 2024
	{1, 2, "2024-01-01"},
	{2, 3, "2024-01-01"},
	{3, 1, "2024-01-02"},
	{4, 2, "2024-01-02"},
	{5, 2, "2024-01-03"},
	{1, 1, "2024-01-03"},
	{2, 2, "2024-01-04"},
	{3, 3, "2024-01-05"},
	// Febrero 2024
	{1, 3, "2024-02-01"},
	{2, 2, "2024-02-01"},
	{4, 4, "2024-02-02"},
	{5, 1, "2024-02-02"},
	{3, 2, "2024-02-03"},
	{1, 1, "2024-02-03"},
	{2, 3, "2024-02-04"},
	{4, 2, "2024-02-05"},
	// Marzo 2024
	{1, 2, "2024-03-01"},
	{5, 3, "2024-03-01"},
	{2, 2, "2024-03-02"},
	{3, 4, "2024-03-02"},
	{4, 1, "2024-03-03"},
	{1, 2, "2024-03-03"},
	{5, 2, "2024-03-04"},
	{2, 1, "2024-03-05"},
	// Quincena final con más frecuencia
	{1, 3, "2024-03-15"},
	{2, 2, "2024-03-15"},
	{3, 2, "2024-03-16"},
	{4, 3, "2024-03-16"},
	{5, 1, "2024-03-17"},
	{1, 2, "2024-03-17"},
	{2, 4, "2024-03-18"},
	{3, 1, "2024-03-18"},
	{4, 2, "2024-03-19"},
	{5, 3, "2024-03-19"},
	{1, 1, "2024-03-20"},
	{2, 2, "2024-03-20"},
	{3, 3, "2024-03-21"},
	{4, 4, "2024-03-21"},
	{5, 2, "2024-03-22"},
	{1, 3, "2024-03-22"},
	{2, 3, "2024-03-23"},
	{3, 2, "2024-03-23"},
	{4, 3, "2024-03-24"},
	{5, 4, "2024-03-24"},
	{1, 2, "2024-03-25"},
	{2, 3, "2024-03-25"},
}

// CargarDatosEjemplo resets the inventory tables to the sample dataset in
// a single transaction. Sales go first (FK order), identities restart at 1
// so the sample sale rows line up with the sample product IDs.
func (r *SQLiteRepository) CargarDatosEjemplo(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM ventas`); err != nil {
		return fmt.Errorf("clearing ventas: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM productos`); err != nil {
		return fmt.Errorf("clearing productos: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sqlite_sequence WHERE name IN ('ventas', 'productos')`); err != nil {
		return fmt.Errorf("resetting identities: %w", err)
	}

	for _, p := range productosEjemplo {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO productos (nombre, precio, stock) VALUES (?, ?, ?)`,
			p.nombre, p.precio, p.stock); err != nil {
			return fmt.Errorf("seeding producto %q: %w", p.nombre, err)
		}
	}
	for _, v := range ventasEjemplo {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ventas (producto_id, cantidad, fecha_venta) VALUES (?, ?, ?)`,
			v.productoID, v.cantidad, v.fecha+"T00:00:00Z"); err != nil {
			return fmt.Errorf("seeding venta for producto %d on %s: %w", v.productoID, v.fecha, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
