package inventario

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for inventory persistence operations.
// Both backends implement it: SQLiteRepository for the local file,
// PgxRepository for a PostgreSQL server.
type Repository interface {
	CreateProducto(ctx context.Context, p *Producto) error
	ListProductos(ctx context.Context) ([]Producto, error)
	GetProducto(ctx context.Context, id int64) (*Producto, error)
	UpdateProducto(ctx context.Context, p *Producto) error
	UpdateStock(ctx context.Context, id int64, stock int) error
	DeleteProducto(ctx context.Context, id int64) error

	CreateVenta(ctx context.Context, v *Venta) error
	ListVentas(ctx context.Context) ([]Venta, error)

	// Reports. All take no parameters and return plain row structs;
	// rendering happens in the menu layer.
	VentasPorDia(ctx context.Context) ([]VentaDiaria, error)
	TopProductos(ctx context.Context) ([]ProductoTop, error)
	StockCritico(ctx context.Context) ([]AlertaStock, error)
	PromedioVentas(ctx context.Context) ([]PromedioProducto, error)
	TendenciaVentas(ctx context.Context) ([]TendenciaDia, error)
	RentabilidadProductos(ctx context.Context) ([]RentabilidadProducto, error)
	ValorInventario(ctx context.Context) (*ValorInventario, error)
	TendenciaMensual(ctx context.Context) ([]TendenciaMes, error)
	ProyeccionStock(ctx context.Context) ([]ProyeccionProducto, error)

	// CargarDatosEjemplo resets productos and ventas to the bundled
	// sample dataset. Destructive: existing rows are removed first.
	CargarDatosEjemplo(ctx context.Context) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed inventory repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateProducto inserts a new product and sets p.ID from the generated key.
func (r *SQLiteRepository) CreateProducto(ctx context.Context, p *Producto) error {
	if strings.TrimSpace(p.Nombre) == "" {
		return ErrNombreRequired
	}
	const query = `INSERT INTO productos (nombre, precio, stock) VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, p.Nombre, p.Precio.String(), p.Stock)
	if err != nil {
		return fmt.Errorf("inserting producto %q: %w", p.Nombre, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading producto id: %w", err)
	}
	p.ID = id
	return nil
}

// ListProductos returns the full catalog ordered by ID.
func (r *SQLiteRepository) ListProductos(ctx context.Context) ([]Producto, error) {
	const query = `SELECT id, nombre, precio, stock FROM productos ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying productos: %w", err)
	}
	defer rows.Close()

	var productos []Producto
	for rows.Next() {
		p, err := scanProductoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning producto row: %w", err)
		}
		productos = append(productos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating producto rows: %w", err)
	}
	return productos, nil
}

// GetProducto returns a single product by ID.
func (r *SQLiteRepository) GetProducto(ctx context.Context, id int64) (*Producto, error) {
	const query = `SELECT id, nombre, precio, stock FROM productos WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p Producto
	var precio string
	err := row.Scan(&p.ID, &p.Nombre, &precio, &p.Stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductoNotFound
		}
		return nil, fmt.Errorf("scanning producto: %w", err)
	}
	p.Precio = parseDecimal(precio)
	return &p, nil
}

// UpdateProducto updates name, price and stock of an existing product.
// Returns ErrProductoNotFound if the ID does not exist.
func (r *SQLiteRepository) UpdateProducto(ctx context.Context, p *Producto) error {
	if strings.TrimSpace(p.Nombre) == "" {
		return ErrNombreRequired
	}
	const query = `UPDATE productos SET nombre = ?, precio = ?, stock = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, p.Nombre, p.Precio.String(), p.Stock, p.ID)
	if err != nil {
		return fmt.Errorf("updating producto %d: %w", p.ID, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// UpdateStock sets the stock level of a product.
// Returns ErrProductoNotFound if the ID does not exist.
func (r *SQLiteRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE productos SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("updating stock for producto %d: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// DeleteProducto removes a single product by ID.
// Returns ErrProductoNotFound if the product does not exist. Products with
// recorded sales cannot be deleted; the FK on ventas rejects the delete.
func (r *SQLiteRepository) DeleteProducto(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting producto %d: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// CreateVenta inserts a new sale and sets v.ID from the generated key.
// A zero FechaVenta takes the schema default (current time).
func (r *SQLiteRepository) CreateVenta(ctx context.Context, v *Venta) error {
	if v.Cantidad <= 0 {
		return ErrCantidadInvalid
	}

	var result sql.Result
	var err error
	if v.FechaVenta.IsZero() {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO ventas (producto_id, cantidad) VALUES (?, ?)`,
			v.ProductoID, v.Cantidad)
	} else {
		result, err = r.db.ExecContext(ctx,
			`INSERT INTO ventas (producto_id, cantidad, fecha_venta) VALUES (?, ?, ?)`,
			v.ProductoID, v.Cantidad, formatTime(v.FechaVenta))
	}
	if err != nil {
		return fmt.Errorf("inserting venta for producto %d: %w", v.ProductoID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading venta id: %w", err)
	}
	v.ID = id
	return nil
}

// ListVentas returns the sales history, newest first, with product names
// joined in.
func (r *SQLiteRepository) ListVentas(ctx context.Context) ([]Venta, error) {
	const query = `SELECT v.id, v.producto_id, p.nombre, v.cantidad, v.fecha_venta
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		ORDER BY v.fecha_venta DESC, v.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ventas: %w", err)
	}
	defer rows.Close()

	var ventas []Venta
	for rows.Next() {
		var v Venta
		var fecha string
		if err := rows.Scan(&v.ID, &v.ProductoID, &v.ProductoNombre, &v.Cantidad, &fecha); err != nil {
			return nil, fmt.Errorf("scanning venta row: %w", err)
		}
		v.FechaVenta = parseTime(fecha)
		ventas = append(ventas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venta rows: %w", err)
	}
	return ventas, nil
}

// scanProductoRow scans a product from a Rows cursor.
func scanProductoRow(rows *sql.Rows) (*Producto, error) {
	var p Producto
	var precio string
	if err := rows.Scan(&p.ID, &p.Nombre, &precio, &p.Stock); err != nil {
		return nil, err
	}
	p.Precio = parseDecimal(precio)
	return &p, nil
}

// parseDecimal parses a stored decimal string. Invalid values become zero;
// the schema only ever stores strings produced by decimal.String().
func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTime parses an ISO 8601 timestamp from SQLite.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04:05Z", s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// formatTime renders a timestamp the way the schema stores them.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
