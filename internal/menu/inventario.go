package menu

import (
	"context"
	"fmt"

	"github.com/abdielLopezpy/aulasql/internal/auditoria"
	"github.com/abdielLopezpy/aulasql/internal/inventario"
)

// runInventario drives the inventory submenu until the user goes back.
func (m *Menu) runInventario(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintln(m.out)
		fmt.Fprintf(m.out, "%s\n", sectionStyle.Render("INVENTARIO Y VENTAS ("+m.backend+")"))
		fmt.Fprintln(m.out, "1) Crear tablas")
		fmt.Fprintln(m.out, "2) Cargar datos de ejemplo (reinicia tablas)")
		fmt.Fprintln(m.out, "3) Registrar producto")
		fmt.Fprintln(m.out, "4) Ver productos")
		fmt.Fprintln(m.out, "5) Registrar venta")
		fmt.Fprintln(m.out, "6) Ver ventas")
		fmt.Fprintln(m.out, "7) Actualizar producto")
		fmt.Fprintln(m.out, "8) Eliminar producto")
		fmt.Fprintln(m.out, "9) Analytics básicos")
		fmt.Fprintln(m.out, "10) Analytics avanzados")
		fmt.Fprintln(m.out, "11) Proyecciones")
		fmt.Fprintln(m.out, "12) Volver")

		opcion, ok := m.prompt("Elige una opción")
		if !ok {
			return
		}

		switch opcion {
		case "1":
			m.handle(m.crearTablas(ctx))
		case "2":
			m.handle(m.cargarDatosEjemplo(ctx))
		case "3":
			m.handle(m.registrarProducto(ctx))
		case "4":
			m.handle(m.verProductos(ctx))
		case "5":
			m.handle(m.registrarVenta(ctx))
		case "6":
			m.handle(m.verVentas(ctx))
		case "7":
			m.handle(m.actualizarProducto(ctx))
		case "8":
			m.handle(m.eliminarProducto(ctx))
		case "9":
			m.handle(m.analyticsBasicos(ctx))
		case "10":
			m.handle(m.analyticsAvanzados(ctx))
		case "11":
			m.handle(m.proyecciones(ctx))
		case "12":
			return
		default:
			m.invalid(opcion)
		}
	}
}

func (m *Menu) crearTablas(ctx context.Context) error {
	if err := m.crearTablasInventario(ctx); err != nil {
		return err
	}
	m.ok("Tablas de inventario creadas (o ya existían)")
	return nil
}

func (m *Menu) cargarDatosEjemplo(ctx context.Context) error {
	// Destructive: warn and require confirmation before wiping the tables.
	fmt.Fprintln(m.out, warnStyle.Render(
		"Esta opción elimina los productos y ventas actuales y carga el juego de datos de ejemplo."))
	confirma, ok := m.prompt("¿Continuar? (s/n)")
	if !ok || confirma != "s" {
		fmt.Fprintln(m.out, mutedStyle.Render("Operación cancelada"))
		return nil
	}

	if err := m.inventario.CargarDatosEjemplo(ctx); err != nil {
		return err
	}
	m.ok("Datos de ejemplo cargados: 8 productos, 46 ventas (enero-marzo 2024)")
	m.registrar(ctx, auditoria.OpSeed,
		"datos de ejemplo de inventario cargados",
		map[string]any{"productos": 8, "ventas": 46})
	return nil
}

func (m *Menu) registrarProducto(ctx context.Context) error {
	nombre, ok := m.prompt("Nombre del producto")
	if !ok {
		return nil
	}
	precio, err := m.promptDecimal("Precio")
	if err != nil {
		return err
	}
	stock, err := m.promptInt("Stock")
	if err != nil {
		return err
	}

	p := &inventario.Producto{Nombre: nombre, Precio: precio, Stock: stock}
	if err := m.inventario.CreateProducto(ctx, p); err != nil {
		return err
	}
	m.ok("Producto %q registrado con ID=%d", p.Nombre, p.ID)
	m.registrar(ctx, auditoria.OpInsert,
		fmt.Sprintf("producto %q registrado", p.Nombre),
		map[string]any{"producto_id": p.ID})
	return nil
}

func (m *Menu) verProductos(ctx context.Context) error {
	productos, err := m.inventario.ListProductos(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("PRODUCTOS"))
	if len(productos) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("No hay productos registrados"))
		return nil
	}
	for _, p := range productos {
		fmt.Fprintf(m.out, "ID: %-4d %-24s $%-10s stock: %d\n",
			p.ID, p.Nombre, p.Precio.StringFixed(2), p.Stock)
	}
	return nil
}

func (m *Menu) registrarVenta(ctx context.Context) error {
	productoID, err := m.promptInt64("ID del producto")
	if err != nil {
		return err
	}
	cantidad, err := m.promptInt("Cantidad")
	if err != nil {
		return err
	}

	v := &inventario.Venta{ProductoID: productoID, Cantidad: cantidad}
	if err := m.inventario.CreateVenta(ctx, v); err != nil {
		return err
	}
	m.ok("Venta registrada con ID=%d", v.ID)
	m.registrar(ctx, auditoria.OpInsert,
		fmt.Sprintf("venta de %d unidades del producto %d", cantidad, productoID),
		map[string]any{"venta_id": v.ID, "producto_id": productoID})
	return nil
}

func (m *Menu) verVentas(ctx context.Context) error {
	ventas, err := m.inventario.ListVentas(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("HISTORIAL DE VENTAS"))
	if len(ventas) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("No hay ventas registradas"))
		return nil
	}
	for _, v := range ventas {
		fmt.Fprintf(m.out, "ID: %-4d %-24s x%-3d %s\n",
			v.ID, v.ProductoNombre, v.Cantidad,
			mutedStyle.Render(v.FechaVenta.Format("2006-01-02")))
	}
	return nil
}

func (m *Menu) actualizarProducto(ctx context.Context) error {
	id, err := m.promptInt64("ID del producto")
	if err != nil {
		return err
	}
	p, err := m.inventario.GetProducto(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Actual: %s | $%s | stock %d\n",
		p.Nombre, p.Precio.StringFixed(2), p.Stock)

	precio, err := m.promptDecimal("Nuevo precio")
	if err != nil {
		return err
	}
	stock, err := m.promptInt("Nuevo stock")
	if err != nil {
		return err
	}

	p.Precio = precio
	p.Stock = stock
	if err := m.inventario.UpdateProducto(ctx, p); err != nil {
		return err
	}
	m.ok("Producto %q actualizado", p.Nombre)
	m.registrar(ctx, auditoria.OpUpdate,
		fmt.Sprintf("producto %q actualizado", p.Nombre),
		map[string]any{"producto_id": p.ID})
	return nil
}

func (m *Menu) eliminarProducto(ctx context.Context) error {
	id, err := m.promptInt64("ID del producto a eliminar")
	if err != nil {
		return err
	}

	if err := m.inventario.DeleteProducto(ctx, id); err != nil {
		return err
	}
	m.ok("Producto ID=%d eliminado", id)
	m.registrar(ctx, auditoria.OpDelete,
		fmt.Sprintf("producto %d eliminado", id),
		map[string]any{"producto_id": id})
	return nil
}

// analyticsBasicos renders the four core reports: daily sales, best
// sellers, stock alerts and per-product averages.
func (m *Menu) analyticsBasicos(ctx context.Context) error {
	porDia, err := m.inventario.VentasPorDia(ctx)
	if err != nil {
		return err
	}
	top, err := m.inventario.TopProductos(ctx)
	if err != nil {
		return err
	}
	alertas, err := m.inventario.StockCritico(ctx)
	if err != nil {
		return err
	}
	promedios, err := m.inventario.PromedioVentas(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("VENTAS POR DÍA (últimos 7 días con ventas)"))
	for _, d := range porDia {
		fmt.Fprintf(m.out, "%s: %d ventas | $%s\n", d.Dia, d.TotalVentas, d.Ingresos.StringFixed(2))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("TOP 5 PRODUCTOS MÁS VENDIDOS"))
	for _, t := range top {
		fmt.Fprintf(m.out, "%-24s %d uds | $%s\n", t.Nombre, t.UnidadesVendidas, t.IngresosGenerados.StringFixed(2))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("ALERTAS DE STOCK"))
	if len(alertas) == 0 {
		fmt.Fprintln(m.out, okStyle.Render("Sin alertas: todos los productos con stock suficiente"))
	}
	for _, a := range alertas {
		fmt.Fprintf(m.out, "%s %-24s %d unidades\n", renderEstado(a.Estado), a.Nombre, a.Stock)
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("PROMEDIOS DE VENTA"))
	for _, p := range promedios {
		fmt.Fprintf(m.out, "%-24s %s uds/venta | $%s/venta\n",
			p.Nombre, p.PromedioUnidades.StringFixed(2), p.PromedioIngresos.StringFixed(2))
	}
	return nil
}

// analyticsAvanzados renders the daily trend, profitability and inventory
// value reports.
func (m *Menu) analyticsAvanzados(ctx context.Context) error {
	tendencia, err := m.inventario.TendenciaVentas(ctx)
	if err != nil {
		return err
	}
	rentabilidad, err := m.inventario.RentabilidadProductos(ctx)
	if err != nil {
		return err
	}
	valor, err := m.inventario.ValorInventario(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("TENDENCIA DE VENTAS POR DÍA"))
	for _, t := range tendencia {
		fmt.Fprintf(m.out, "%s: %d ventas | $%s | ticket promedio $%s\n",
			t.Dia, t.TotalVentas, t.Ingresos.StringFixed(2), t.TicketPromedio.StringFixed(2))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("RENTABILIDAD POR PRODUCTO"))
	for _, r := range rentabilidad {
		fmt.Fprintf(m.out, "%-24s $%-10s vendido %d veces | %d uds | $%s total | $%s/venta\n",
			r.Nombre, r.Precio.StringFixed(2), r.VecesVendido, r.UnidadesVendidas,
			r.IngresosTotales.StringFixed(2), r.IngresoPorVenta.StringFixed(2))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("VALOR DEL INVENTARIO"))
	fmt.Fprintf(m.out, "Valor total: $%s\n", valor.ValorTotal.StringFixed(2))
	fmt.Fprintf(m.out, "Promedio por producto: $%s\n", valor.ValorPromedio.StringFixed(2))
	fmt.Fprintf(m.out, "Productos en stock bajo: %d\n", valor.ProductosStockBajo)
	return nil
}

// proyecciones renders the monthly trend and the stock projection reports.
func (m *Menu) proyecciones(ctx context.Context) error {
	mensual, err := m.inventario.TendenciaMensual(ctx)
	if err != nil {
		return err
	}
	proyeccion, err := m.inventario.ProyeccionStock(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("ANÁLISIS MENSUAL"))
	for _, t := range mensual {
		fmt.Fprintf(m.out, "%s: $%s | %d uds | tendencia $%s | tendencia %s uds\n",
			t.Mes, t.Ingresos.StringFixed(2), t.UnidadesVendidas,
			t.TendenciaIngresos.StringFixed(2), t.TendenciaUnidades.StringFixed(2))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("PROYECCIÓN DE INVENTARIO"))
	if len(proyeccion) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("Datos insuficientes para proyectar"))
		return nil
	}
	for _, p := range proyeccion {
		fmt.Fprintf(m.out, "%s %-24s stock %d | %s uds/venta | %s uds/día | ~%d días\n",
			renderEstado(p.Estado), p.Nombre, p.Stock,
			p.VentaPromedio.StringFixed(2), p.VentasPorDia.StringFixed(2), p.DiasRestantes)
	}
	return nil
}

// renderEstado maps a severity bucket to a styled label.
func renderEstado(estado string) string {
	switch estado {
	case inventario.EstadoSinStock:
		return errStyle.Render("[SIN STOCK]")
	case inventario.EstadoCritico:
		return errStyle.Render("[CRÍTICO]")
	case inventario.EstadoBajo:
		return warnStyle.Render("[BAJO]")
	case inventario.EstadoAtencion:
		return warnStyle.Render("[ATENCIÓN]")
	default:
		return okStyle.Render("[NORMAL]")
	}
}
