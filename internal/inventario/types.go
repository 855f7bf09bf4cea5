package inventario

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto is a catalog entry with its current price and stock level.
// Precio is fixed-point decimal; it is stored as an exact decimal string
// in SQLite and as NUMERIC(10,2) in PostgreSQL.
type Producto struct {
	ID     int64
	Nombre string
	Precio decimal.Decimal
	Stock  int
}

// Venta records one sale of a product. ProductoNombre is populated by
// listing queries that join productos; it is not a column of ventas.
type Venta struct {
	ID             int64
	ProductoID     int64
	Cantidad       int
	FechaVenta     time.Time
	ProductoNombre string
}

// Stock states reported by StockCritico and ProyeccionStock.
const (
	EstadoSinStock = "sin_stock" // stock exhausted
	EstadoCritico  = "critico"   // under 5 units, or under 7 days of cover
	EstadoBajo     = "bajo"      // under 10 units
	EstadoAtencion = "atencion"  // under 14 days of cover
	EstadoNormal   = "normal"
)

// VentaDiaria is one row of the daily sales report: sale count and revenue
// for a calendar day.
type VentaDiaria struct {
	Dia         string
	TotalVentas int
	Ingresos    decimal.Decimal
}

// ProductoTop is one row of the best-sellers report.
type ProductoTop struct {
	Nombre            string
	UnidadesVendidas  int
	IngresosGenerados decimal.Decimal
}

// AlertaStock is one row of the low-stock report. Estado is one of the
// Estado* constants.
type AlertaStock struct {
	Nombre string
	Stock  int
	Estado string
}

// PromedioProducto is one row of the per-product sale averages report.
type PromedioProducto struct {
	Nombre           string
	PromedioUnidades decimal.Decimal
	PromedioIngresos decimal.Decimal
}

// TendenciaDia is one row of the daily trend report: totals plus the
// average ticket for the day.
type TendenciaDia struct {
	Dia            string
	TotalVentas    int
	Ingresos       decimal.Decimal
	TicketPromedio decimal.Decimal
}

// RentabilidadProducto is one row of the profitability report. Products
// with no sales appear with zero counts (LEFT JOIN).
type RentabilidadProducto struct {
	Nombre           string
	Precio           decimal.Decimal
	VecesVendido     int
	UnidadesVendidas int
	IngresosTotales  decimal.Decimal
	IngresoPorVenta  decimal.Decimal
}

// ValorInventario summarizes the value of stock on hand.
type ValorInventario struct {
	ValorTotal         decimal.Decimal
	ValorPromedio      decimal.Decimal
	ProductosStockBajo int
}

// TendenciaMes is one row of the monthly trend report. The Tendencia
// columns are three-month moving averages.
type TendenciaMes struct {
	Mes               string
	Ingresos          decimal.Decimal
	UnidadesVendidas  int
	TendenciaIngresos decimal.Decimal
	TendenciaUnidades decimal.Decimal
}

// ProyeccionProducto is one row of the stock projection report.
// DiasRestantes estimates how long the current stock lasts at the
// observed daily sell-through rate.
type ProyeccionProducto struct {
	Nombre        string
	Stock         int
	VentaPromedio decimal.Decimal
	VentasPorDia  decimal.Decimal
	DiasRestantes int
	Estado        string
}
