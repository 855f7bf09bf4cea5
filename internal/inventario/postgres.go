package inventario

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRepository implements Repository against a PostgreSQL server.
//
// Monetary columns are NUMERIC(10,2); queries cast money expressions to
// text and parse them back into decimals, so values never pass through
// binary floats.
type PgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new PostgreSQL-backed inventory repository.
func NewPgxRepository(pool *pgxpool.Pool) *PgxRepository {
	return &PgxRepository{pool: pool}
}

// CreateProducto inserts a new product and sets p.ID from the generated key.
func (r *PgxRepository) CreateProducto(ctx context.Context, p *Producto) error {
	if strings.TrimSpace(p.Nombre) == "" {
		return ErrNombreRequired
	}
	const query = `INSERT INTO productos (nombre, precio, stock)
		VALUES ($1, $2, $3) RETURNING id`
	err := r.pool.QueryRow(ctx, query, p.Nombre, p.Precio.String(), p.Stock).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("inserting producto %q: %w", p.Nombre, err)
	}
	return nil
}

// ListProductos returns the full catalog ordered by ID.
func (r *PgxRepository) ListProductos(ctx context.Context) ([]Producto, error) {
	const query = `SELECT id, nombre, precio::text, stock FROM productos ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying productos: %w", err)
	}
	defer rows.Close()

	var productos []Producto
	for rows.Next() {
		var p Producto
		var precio string
		if err := rows.Scan(&p.ID, &p.Nombre, &precio, &p.Stock); err != nil {
			return nil, fmt.Errorf("scanning producto row: %w", err)
		}
		p.Precio = parseDecimal(precio)
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating producto rows: %w", err)
	}
	return productos, nil
}

// GetProducto returns a single product by ID.
func (r *PgxRepository) GetProducto(ctx context.Context, id int64) (*Producto, error) {
	const query = `SELECT id, nombre, precio::text, stock FROM productos WHERE id = $1`

	var p Producto
	var precio string
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Nombre, &precio, &p.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductoNotFound
		}
		return nil, fmt.Errorf("scanning producto: %w", err)
	}
	p.Precio = parseDecimal(precio)
	return &p, nil
}

// UpdateProducto updates name, price and stock of an existing product.
// Returns ErrProductoNotFound if the ID does not exist.
func (r *PgxRepository) UpdateProducto(ctx context.Context, p *Producto) error {
	if strings.TrimSpace(p.Nombre) == "" {
		return ErrNombreRequired
	}
	const query = `UPDATE productos SET nombre = $1, precio = $2, stock = $3 WHERE id = $4`
	tag, err := r.pool.Exec(ctx, query, p.Nombre, p.Precio.String(), p.Stock, p.ID)
	if err != nil {
		return fmt.Errorf("updating producto %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// UpdateStock sets the stock level of a product.
// Returns ErrProductoNotFound if the ID does not exist.
func (r *PgxRepository) UpdateStock(ctx context.Context, id int64, stock int) error {
	tag, err := r.pool.Exec(ctx, `UPDATE productos SET stock = $1 WHERE id = $2`, stock, id)
	if err != nil {
		return fmt.Errorf("updating stock for producto %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// DeleteProducto removes a single product by ID.
// Returns ErrProductoNotFound if the product does not exist. Products with
// recorded sales cannot be deleted; the FK on ventas rejects the delete.
func (r *PgxRepository) DeleteProducto(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting producto %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductoNotFound
	}
	return nil
}

// CreateVenta inserts a new sale and sets v.ID from the generated key.
// A zero FechaVenta takes the schema default (current time).
func (r *PgxRepository) CreateVenta(ctx context.Context, v *Venta) error {
	if v.Cantidad <= 0 {
		return ErrCantidadInvalid
	}

	var err error
	if v.FechaVenta.IsZero() {
		err = r.pool.QueryRow(ctx,
			`INSERT INTO ventas (producto_id, cantidad) VALUES ($1, $2) RETURNING id`,
			v.ProductoID, v.Cantidad).Scan(&v.ID)
	} else {
		err = r.pool.QueryRow(ctx,
			`INSERT INTO ventas (producto_id, cantidad, fecha_venta) VALUES ($1, $2, $3) RETURNING id`,
			v.ProductoID, v.Cantidad, v.FechaVenta).Scan(&v.ID)
	}
	if err != nil {
		return fmt.Errorf("inserting venta for producto %d: %w", v.ProductoID, err)
	}
	return nil
}

// ListVentas returns the sales history, newest first, with product names
// joined in.
func (r *PgxRepository) ListVentas(ctx context.Context) ([]Venta, error) {
	const query = `SELECT v.id, v.producto_id, p.nombre, v.cantidad, v.fecha_venta
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		ORDER BY v.fecha_venta DESC, v.id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ventas: %w", err)
	}
	defer rows.Close()

	var ventas []Venta
	for rows.Next() {
		var v Venta
		if err := rows.Scan(&v.ID, &v.ProductoID, &v.ProductoNombre, &v.Cantidad, &v.FechaVenta); err != nil {
			return nil, fmt.Errorf("scanning venta row: %w", err)
		}
		ventas = append(ventas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating venta rows: %w", err)
	}
	return ventas, nil
}

// VentasPorDia returns sale counts and revenue for the last seven days
// with sales, newest first.
func (r *PgxRepository) VentasPorDia(ctx context.Context) ([]VentaDiaria, error) {
	const query = `SELECT (v.fecha_venta::date)::text AS dia,
			COUNT(*) AS total_ventas,
			ROUND(SUM(v.cantidad * p.precio), 2)::text AS ingresos
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY dia
		ORDER BY dia DESC
		LIMIT 7`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ventas por dia: %w", err)
	}
	defer rows.Close()

	var report []VentaDiaria
	for rows.Next() {
		var d VentaDiaria
		var ingresos string
		if err := rows.Scan(&d.Dia, &d.TotalVentas, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning ventas por dia row: %w", err)
		}
		d.Ingresos = parseDecimal(ingresos)
		report = append(report, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ventas por dia rows: %w", err)
	}
	return report, nil
}

// TopProductos returns the five best-selling products by units sold.
func (r *PgxRepository) TopProductos(ctx context.Context) ([]ProductoTop, error) {
	const query = `SELECT p.nombre,
			SUM(v.cantidad) AS unidades_vendidas,
			ROUND(SUM(v.cantidad * p.precio), 2)::text AS ingresos_generados
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY p.id, p.nombre
		ORDER BY unidades_vendidas DESC
		LIMIT 5`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying top productos: %w", err)
	}
	defer rows.Close()

	var report []ProductoTop
	for rows.Next() {
		var t ProductoTop
		var ingresos string
		if err := rows.Scan(&t.Nombre, &t.UnidadesVendidas, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning top productos row: %w", err)
		}
		t.IngresosGenerados = parseDecimal(ingresos)
		report = append(report, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top productos rows: %w", err)
	}
	return report, nil
}

// StockCritico returns products under ten units, lowest stock first, with
// a severity bucket per row.
func (r *PgxRepository) StockCritico(ctx context.Context) ([]AlertaStock, error) {
	const query = `SELECT nombre, stock,
			CASE
				WHEN stock = 0 THEN 'sin_stock'
				WHEN stock < 5 THEN 'critico'
				ELSE 'bajo'
			END AS estado
		FROM productos
		WHERE stock < 10
		ORDER BY stock ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying stock critico: %w", err)
	}
	defer rows.Close()

	var report []AlertaStock
	for rows.Next() {
		var a AlertaStock
		if err := rows.Scan(&a.Nombre, &a.Stock, &a.Estado); err != nil {
			return nil, fmt.Errorf("scanning stock critico row: %w", err)
		}
		report = append(report, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock critico rows: %w", err)
	}
	return report, nil
}

// PromedioVentas returns per-product averages of units and revenue per
// sale, highest revenue first.
func (r *PgxRepository) PromedioVentas(ctx context.Context) ([]PromedioProducto, error) {
	const query = `SELECT p.nombre,
			ROUND(AVG(v.cantidad), 2)::text AS promedio_unidades,
			ROUND(AVG(v.cantidad * p.precio), 2)::text AS promedio_ingresos
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY p.id, p.nombre
		ORDER BY AVG(v.cantidad * p.precio) DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying promedio ventas: %w", err)
	}
	defer rows.Close()

	var report []PromedioProducto
	for rows.Next() {
		var p PromedioProducto
		var unidades, ingresos string
		if err := rows.Scan(&p.Nombre, &unidades, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning promedio ventas row: %w", err)
		}
		p.PromedioUnidades = parseDecimal(unidades)
		p.PromedioIngresos = parseDecimal(ingresos)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating promedio ventas rows: %w", err)
	}
	return report, nil
}

// TendenciaVentas returns per-day totals with the average ticket, newest
// day first.
func (r *PgxRepository) TendenciaVentas(ctx context.Context) ([]TendenciaDia, error) {
	const query = `SELECT (v.fecha_venta::date)::text AS dia,
			COUNT(*) AS total_ventas,
			ROUND(SUM(v.cantidad * p.precio), 2)::text AS ingresos,
			ROUND(AVG(v.cantidad * p.precio), 2)::text AS ticket_promedio
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY dia
		ORDER BY dia DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tendencia ventas: %w", err)
	}
	defer rows.Close()

	var report []TendenciaDia
	for rows.Next() {
		var t TendenciaDia
		var ingresos, ticket string
		if err := rows.Scan(&t.Dia, &t.TotalVentas, &ingresos, &ticket); err != nil {
			return nil, fmt.Errorf("scanning tendencia ventas row: %w", err)
		}
		t.Ingresos = parseDecimal(ingresos)
		t.TicketPromedio = parseDecimal(ticket)
		report = append(report, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tendencia ventas rows: %w", err)
	}
	return report, nil
}

// RentabilidadProductos returns per-product totals including products that
// have never sold (zero counts), highest revenue first.
func (r *PgxRepository) RentabilidadProductos(ctx context.Context) ([]RentabilidadProducto, error) {
	const query = `SELECT p.nombre, p.precio::text,
			COUNT(v.id) AS veces_vendido,
			COALESCE(SUM(v.cantidad), 0) AS unidades_vendidas,
			ROUND(COALESCE(SUM(v.cantidad * p.precio), 0), 2)::text AS ingresos_totales,
			ROUND(COALESCE(SUM(v.cantidad * p.precio) / NULLIF(COUNT(v.id), 0), 0), 2)::text AS ingreso_por_venta
		FROM productos p
		LEFT JOIN ventas v ON p.id = v.producto_id
		GROUP BY p.id, p.nombre, p.precio
		ORDER BY COALESCE(SUM(v.cantidad * p.precio), 0) DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rentabilidad productos: %w", err)
	}
	defer rows.Close()

	var report []RentabilidadProducto
	for rows.Next() {
		var p RentabilidadProducto
		var precio, ingresos, porVenta string
		if err := rows.Scan(&p.Nombre, &precio, &p.VecesVendido,
			&p.UnidadesVendidas, &ingresos, &porVenta); err != nil {
			return nil, fmt.Errorf("scanning rentabilidad row: %w", err)
		}
		p.Precio = parseDecimal(precio)
		p.IngresosTotales = parseDecimal(ingresos)
		p.IngresoPorVenta = parseDecimal(porVenta)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rentabilidad rows: %w", err)
	}
	return report, nil
}

// ValorInventario returns the total and average value of stock on hand and
// the count of low-stock products.
func (r *PgxRepository) ValorInventario(ctx context.Context) (*ValorInventario, error) {
	const query = `SELECT
			ROUND(COALESCE(SUM(stock * precio), 0), 2)::text AS valor_total,
			ROUND(COALESCE(AVG(stock * precio), 0), 2)::text AS valor_promedio,
			COUNT(CASE WHEN stock < 10 THEN 1 END) AS productos_stock_bajo
		FROM productos`

	var v ValorInventario
	var total, promedio string
	err := r.pool.QueryRow(ctx, query).Scan(&total, &promedio, &v.ProductosStockBajo)
	if err != nil {
		return nil, fmt.Errorf("scanning valor inventario: %w", err)
	}
	v.ValorTotal = parseDecimal(total)
	v.ValorPromedio = parseDecimal(promedio)
	return &v, nil
}

// TendenciaMensual returns monthly totals with three-month moving averages,
// oldest month first.
func (r *PgxRepository) TendenciaMensual(ctx context.Context) ([]TendenciaMes, error) {
	const query = `WITH datos_mensuales AS (
			SELECT to_char(DATE_TRUNC('month', v.fecha_venta), 'YYYY-MM') AS mes,
				ROUND(SUM(v.cantidad * p.precio), 2) AS ingresos,
				SUM(v.cantidad) AS unidades_vendidas
			FROM ventas v
			JOIN productos p ON v.producto_id = p.id
			GROUP BY mes
		)
		SELECT mes, ingresos::text, unidades_vendidas,
			ROUND(AVG(ingresos) OVER (ORDER BY mes ROWS BETWEEN 2 PRECEDING AND CURRENT ROW), 2)::text AS tendencia_ingresos,
			ROUND(AVG(unidades_vendidas) OVER (ORDER BY mes ROWS BETWEEN 2 PRECEDING AND CURRENT ROW), 2)::text AS tendencia_unidades
		FROM datos_mensuales
		ORDER BY mes`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tendencia mensual: %w", err)
	}
	defer rows.Close()

	var report []TendenciaMes
	for rows.Next() {
		var t TendenciaMes
		var ingresos, tendIngresos, tendUnidades string
		if err := rows.Scan(&t.Mes, &ingresos, &t.UnidadesVendidas,
			&tendIngresos, &tendUnidades); err != nil {
			return nil, fmt.Errorf("scanning tendencia mensual row: %w", err)
		}
		t.Ingresos = parseDecimal(ingresos)
		t.TendenciaIngresos = parseDecimal(tendIngresos)
		t.TendenciaUnidades = parseDecimal(tendUnidades)
		report = append(report, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tendencia mensual rows: %w", err)
	}
	return report, nil
}

// ProyeccionStock estimates, for every product with at least one sale, how
// many days the current stock lasts at the observed daily sell-through.
// Products closest to running out come first.
func (r *PgxRepository) ProyeccionStock(ctx context.Context) ([]ProyeccionProducto, error) {
	const query = `WITH datos_producto AS (
			SELECT p.id, p.nombre, p.stock,
				COALESCE(SUM(v.cantidad), 0) AS total_vendido,
				COALESCE(AVG(v.cantidad), 0) AS promedio_por_venta,
				(SELECT COUNT(DISTINCT fecha_venta::date) FROM ventas) AS total_dias
			FROM productos p
			LEFT JOIN ventas v ON p.id = v.producto_id
			GROUP BY p.id, p.nombre, p.stock
		)
		SELECT nombre, stock,
			ROUND(promedio_por_venta, 2)::text AS venta_promedio,
			ROUND(total_vendido * 1.0 / NULLIF(total_dias, 0), 2)::text AS ventas_por_dia,
			ROUND(stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0), 0)::int AS dias_restantes,
			CASE
				WHEN stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0) < 7 THEN 'critico'
				WHEN stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0) < 14 THEN 'atencion'
				ELSE 'normal'
			END AS estado
		FROM datos_producto
		WHERE total_vendido > 0
		ORDER BY dias_restantes ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying proyeccion stock: %w", err)
	}
	defer rows.Close()

	var report []ProyeccionProducto
	for rows.Next() {
		var p ProyeccionProducto
		var promedio, porDia string
		if err := rows.Scan(&p.Nombre, &p.Stock, &promedio, &porDia,
			&p.DiasRestantes, &p.Estado); err != nil {
			return nil, fmt.Errorf("scanning proyeccion row: %w", err)
		}
		p.VentaPromedio = parseDecimal(promedio)
		p.VentasPorDia = parseDecimal(porDia)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proyeccion rows: %w", err)
	}
	return report, nil
}

// CargarDatosEjemplo resets the inventory tables to the sample dataset in
// a single transaction. TRUNCATE with RESTART IDENTITY lines the sample
// sale rows up with the sample product IDs.
func (r *PgxRepository) CargarDatosEjemplo(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // No-op after commit

	if _, err := tx.Exec(ctx,
		`TRUNCATE TABLE ventas, productos RESTART IDENTITY CASCADE`); err != nil {
		return fmt.Errorf("clearing inventory tables: %w", err)
	}

	for _, p := range productosEjemplo {
		if _, err := tx.Exec(ctx,
			`INSERT INTO productos (nombre, precio, stock) VALUES ($1, $2, $3)`,
			p.nombre, p.precio, p.stock); err != nil {
			return fmt.Errorf("seeding producto %q: %w", p.nombre, err)
		}
	}
	for _, v := range ventasEjemplo {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ventas (producto_id, cantidad, fecha_venta) VALUES ($1, $2, $3::timestamp)`,
			v.productoID, v.cantidad, v.fecha); err != nil {
			return fmt.Errorf("seeding venta for producto %d on %s: %w", v.productoID, v.fecha, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
