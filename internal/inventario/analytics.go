package inventario

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Report queries for the SQLite backend. Monetary aggregates are rounded to
// two decimals in SQL, then converted back to fixed-point decimals; the
// rounding keeps the float scan exact at cent precision.

// VentasPorDia returns sale counts and revenue for the last seven days
// with sales, newest first.
func (r *SQLiteRepository) VentasPorDia(ctx context.Context) ([]VentaDiaria, error) {
	const query = `SELECT DATE(v.fecha_venta) AS dia,
			COUNT(*) AS total_ventas,
			ROUND(SUM(v.cantidad * p.precio), 2) AS ingresos
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY dia
		ORDER BY dia DESC
		LIMIT 7`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying ventas por dia: %w", err)
	}
	defer rows.Close()

	var report []VentaDiaria
	for rows.Next() {
		var d VentaDiaria
		var ingresos float64
		if err := rows.Scan(&d.Dia, &d.TotalVentas, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning ventas por dia row: %w", err)
		}
		d.Ingresos = decimal.NewFromFloat(ingresos)
		report = append(report, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ventas por dia rows: %w", err)
	}
	return report, nil
}

// TopProductos returns the five best-selling products by units sold.
func (r *SQLiteRepository) TopProductos(ctx context.Context) ([]ProductoTop, error) {
	const query = `SELECT p.nombre,
			SUM(v.cantidad) AS unidades_vendidas,
			ROUND(SUM(v.cantidad * p.precio), 2) AS ingresos_generados
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY p.id, p.nombre
		ORDER BY unidades_vendidas DESC
		LIMIT 5`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying top productos: %w", err)
	}
	defer rows.Close()

	var report []ProductoTop
	for rows.Next() {
		var t ProductoTop
		var ingresos float64
		if err := rows.Scan(&t.Nombre, &t.UnidadesVendidas, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning top productos row: %w", err)
		}
		t.IngresosGenerados = decimal.NewFromFloat(ingresos)
		report = append(report, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top productos rows: %w", err)
	}
	return report, nil
}

// StockCritico returns products under ten units, lowest stock first, with
// a severity bucket per row.
func (r *SQLiteRepository) StockCritico(ctx context.Context) ([]AlertaStock, error) {
	const query = `SELECT nombre, stock,
			CASE
				WHEN stock = 0 THEN 'sin_stock'
				WHEN stock < 5 THEN 'critico'
				ELSE 'bajo'
			END AS estado
		FROM productos
		WHERE stock < 10
		ORDER BY stock ASC`
	rows, err := r.db.QueryContext(ctx, query)
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
func (r *SQLiteRepository) PromedioVentas(ctx context.Context) ([]PromedioProducto, error) {
	const query = `SELECT p.nombre,
			ROUND(AVG(v.cantidad), 2) AS promedio_unidades,
			ROUND(AVG(v.cantidad * p.precio), 2) AS promedio_ingresos
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY p.id, p.nombre
		ORDER BY promedio_ingresos DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying promedio ventas: %w", err)
	}
	defer rows.Close()

	var report []PromedioProducto
	for rows.Next() {
		var p PromedioProducto
		var unidades, ingresos float64
		if err := rows.Scan(&p.Nombre, &unidades, &ingresos); err != nil {
			return nil, fmt.Errorf("scanning promedio ventas row: %w", err)
		}
		p.PromedioUnidades = decimal.NewFromFloat(unidades)
		p.PromedioIngresos = decimal.NewFromFloat(ingresos)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating promedio ventas rows: %w", err)
	}
	return report, nil
}

// TendenciaVentas returns per-day totals with the average ticket, newest
// day first. Unlike VentasPorDia it is not capped at seven days.
func (r *SQLiteRepository) TendenciaVentas(ctx context.Context) ([]TendenciaDia, error) {
	const query = `SELECT DATE(v.fecha_venta) AS dia,
			COUNT(*) AS total_ventas,
			ROUND(SUM(v.cantidad * p.precio), 2) AS ingresos,
			ROUND(AVG(v.cantidad * p.precio), 2) AS ticket_promedio
		FROM ventas v
		JOIN productos p ON v.producto_id = p.id
		GROUP BY dia
		ORDER BY dia DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tendencia ventas: %w", err)
	}
	defer rows.Close()

	var report []TendenciaDia
	for rows.Next() {
		var t TendenciaDia
		var ingresos, ticket float64
		if err := rows.Scan(&t.Dia, &t.TotalVentas, &ingresos, &ticket); err != nil {
			return nil, fmt.Errorf("scanning tendencia ventas row: %w", err)
		}
		t.Ingresos = decimal.NewFromFloat(ingresos)
		t.TicketPromedio = decimal.NewFromFloat(ticket)
		report = append(report, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tendencia ventas rows: %w", err)
	}
	return report, nil
}

// RentabilidadProductos returns per-product totals including products that
// have never sold (zero counts), highest revenue first.
func (r *SQLiteRepository) RentabilidadProductos(ctx context.Context) ([]RentabilidadProducto, error) {
	const query = `SELECT p.nombre, p.precio,
			COUNT(v.id) AS veces_vendido,
			COALESCE(SUM(v.cantidad), 0) AS unidades_vendidas,
			ROUND(COALESCE(SUM(v.cantidad * p.precio), 0), 2) AS ingresos_totales,
			ROUND(COALESCE(SUM(v.cantidad * p.precio) / NULLIF(COUNT(v.id), 0), 0), 2) AS ingreso_por_venta
		FROM productos p
		LEFT JOIN ventas v ON p.id = v.producto_id
		GROUP BY p.id, p.nombre, p.precio
		ORDER BY ingresos_totales DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying rentabilidad productos: %w", err)
	}
	defer rows.Close()

	var report []RentabilidadProducto
	for rows.Next() {
		var p RentabilidadProducto
		var precio string
		var ingresos, porVenta float64
		if err := rows.Scan(&p.Nombre, &precio, &p.VecesVendido,
			&p.UnidadesVendidas, &ingresos, &porVenta); err != nil {
			return nil, fmt.Errorf("scanning rentabilidad row: %w", err)
		}
		p.Precio = parseDecimal(precio)
		p.IngresosTotales = decimal.NewFromFloat(ingresos)
		p.IngresoPorVenta = decimal.NewFromFloat(porVenta)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rentabilidad rows: %w", err)
	}
	return report, nil
}

// ValorInventario returns the total and average value of stock on hand and
// the count of low-stock products.
func (r *SQLiteRepository) ValorInventario(ctx context.Context) (*ValorInventario, error) {
	const query = `SELECT
			ROUND(COALESCE(SUM(stock * precio), 0), 2) AS valor_total,
			ROUND(COALESCE(AVG(stock * precio), 0), 2) AS valor_promedio,
			COUNT(CASE WHEN stock < 10 THEN 1 END) AS productos_stock_bajo
		FROM productos`
	row := r.db.QueryRowContext(ctx, query)

	var v ValorInventario
	var total, promedio float64
	if err := row.Scan(&total, &promedio, &v.ProductosStockBajo); err != nil {
		return nil, fmt.Errorf("scanning valor inventario: %w", err)
	}
	v.ValorTotal = decimal.NewFromFloat(total)
	v.ValorPromedio = decimal.NewFromFloat(promedio)
	return &v, nil
}

// TendenciaMensual returns monthly totals with three-month moving averages,
// oldest month first.
func (r *SQLiteRepository) TendenciaMensual(ctx context.Context) ([]TendenciaMes, error) {
	const query = `WITH datos_mensuales AS (
			SELECT strftime('%Y-%m', v.fecha_venta) AS mes,
				ROUND(SUM(v.cantidad * p.precio), 2) AS ingresos,
				SUM(v.cantidad) AS unidades_vendidas
			FROM ventas v
			JOIN productos p ON v.producto_id = p.id
			GROUP BY mes
		)
		SELECT mes, ingresos, unidades_vendidas,
			ROUND(AVG(ingresos) OVER (ORDER BY mes ROWS BETWEEN 2 PRECEDING AND CURRENT ROW), 2) AS tendencia_ingresos,
			ROUND(AVG(unidades_vendidas) OVER (ORDER BY mes ROWS BETWEEN 2 PRECEDING AND CURRENT ROW), 2) AS tendencia_unidades
		FROM datos_mensuales
		ORDER BY mes`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tendencia mensual: %w", err)
	}
	defer rows.Close()

	var report []TendenciaMes
	for rows.Next() {
		var t TendenciaMes
		var ingresos, tendIngresos, tendUnidades float64
		if err := rows.Scan(&t.Mes, &ingresos, &t.UnidadesVendidas,
			&tendIngresos, &tendUnidades); err != nil {
			return nil, fmt.Errorf("scanning tendencia mensual row: %w", err)
		}
		t.Ingresos = decimal.NewFromFloat(ingresos)
		t.TendenciaIngresos = decimal.NewFromFloat(tendIngresos)
		t.TendenciaUnidades = decimal.NewFromFloat(tendUnidades)
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
func (r *SQLiteRepository) ProyeccionStock(ctx context.Context) ([]ProyeccionProducto, error) {
	const query = `WITH datos_producto AS (
			SELECT p.id, p.nombre, p.stock,
				COALESCE(SUM(v.cantidad), 0) AS total_vendido,
				COALESCE(AVG(v.cantidad), 0) AS promedio_por_venta,
				(SELECT COUNT(DISTINCT DATE(fecha_venta)) FROM ventas) AS total_dias
			FROM productos p
			LEFT JOIN ventas v ON p.id = v.producto_id
			GROUP BY p.id, p.nombre, p.stock
		)
		SELECT nombre, stock,
			ROUND(promedio_por_venta, 2) AS venta_promedio,
			ROUND(total_vendido * 1.0 / NULLIF(total_dias, 0), 2) AS ventas_por_dia,
			CAST(ROUND(stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0), 0) AS INTEGER) AS dias_restantes,
			CASE
				WHEN stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0) < 7 THEN 'critico'
				WHEN stock / NULLIF(total_vendido * 1.0 / NULLIF(total_dias, 0), 0) < 14 THEN 'atencion'
				ELSE 'normal'
			END AS estado
		FROM datos_producto
		WHERE total_vendido > 0
		ORDER BY dias_restantes ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying proyeccion stock: %w", err)
	}
	defer rows.Close()

	var report []ProyeccionProducto
	for rows.Next() {
		var p ProyeccionProducto
		var promedio, porDia float64
		if err := rows.Scan(&p.Nombre, &p.Stock, &promedio, &porDia,
			&p.DiasRestantes, &p.Estado); err != nil {
			return nil, fmt.Errorf("scanning proyeccion row: %w", err)
		}
		p.VentaPromedio = decimal.NewFromFloat(promedio)
		p.VentasPorDia = decimal.NewFromFloat(porDia)
		report = append(report, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proyeccion rows: %w", err)
	}
	return report, nil
}
