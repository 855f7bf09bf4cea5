package inventario

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abdielLopezpy/aulasql/internal/infrastructure/database"
	_ "github.com/abdielLopezpy/aulasql/migrations" // Registers the embedded schema
)

// openTestRepo creates a migrated temporary database and returns a
// repository on it.
func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return NewSQLiteRepository(db.DB)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parsing decimal %q: %v", s, err)
	}
	return d
}

func TestCreateProducto(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	t.Run("round trip preserves exact values", func(t *testing.T) {
		p := &Producto{
			Nombre: "Laptop Gaming",
			Precio: mustDecimal(t, "1299.99"),
			Stock:  5,
		}
		if err := repo.CreateProducto(ctx, p); err != nil {
			t.Fatalf("CreateProducto() error = %v", err)
		}
		if p.ID == 0 {
			t.Fatal("CreateProducto() should set a generated ID")
		}

		got, err := repo.GetProducto(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProducto() error = %v", err)
		}
		if got.Nombre != "Laptop Gaming" {
			t.Errorf("Nombre = %q, want %q", got.Nombre, "Laptop Gaming")
		}
		if !got.Precio.Equal(mustDecimal(t, "1299.99")) {
			t.Errorf("Precio = %s, want 1299.99", got.Precio)
		}
		if got.Stock != 5 {
			t.Errorf("Stock = %d, want 5", got.Stock)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		p := &Producto{Nombre: "   ", Precio: mustDecimal(t, "1.00")}
		err := repo.CreateProducto(ctx, p)
		if !errors.Is(err, ErrNombreRequired) {
			t.Errorf("CreateProducto() error = %v, want ErrNombreRequired", err)
		}
	})
}

func TestGetProducto_NotFound(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetProducto(context.Background(), 999)
	if !errors.Is(err, ErrProductoNotFound) {
		t.Errorf("GetProducto() error = %v, want ErrProductoNotFound", err)
	}
}

func TestListProductos(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, nombre := range []string{"Webcam HD", "Hub USB", "Mousepad XL"} {
		p := &Producto{Nombre: nombre, Precio: mustDecimal(t, "10.00"), Stock: 1}
		if err := repo.CreateProducto(ctx, p); err != nil {
			t.Fatalf("CreateProducto(%q) error = %v", nombre, err)
		}
	}

	productos, err := repo.ListProductos(ctx)
	if err != nil {
		t.Fatalf("ListProductos() error = %v", err)
	}
	if len(productos) != 3 {
		t.Fatalf("ListProductos() returned %d productos, want 3", len(productos))
	}
	// Insertion order equals ID order.
	if productos[0].Nombre != "Webcam HD" || productos[2].Nombre != "Mousepad XL" {
		t.Errorf("unexpected ordering: %q ... %q", productos[0].Nombre, productos[2].Nombre)
	}
}

func TestUpdateProducto(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p := &Producto{Nombre: "Monitor 24'", Precio: mustDecimal(t, "199.99"), Stock: 15}
	if err := repo.CreateProducto(ctx, p); err != nil {
		t.Fatalf("CreateProducto() error = %v", err)
	}

	t.Run("updates all fields", func(t *testing.T) {
		p.Nombre = "Monitor 27'"
		p.Precio = mustDecimal(t, "249.99")
		p.Stock = 10
		if err := repo.UpdateProducto(ctx, p); err != nil {
			t.Fatalf("UpdateProducto() error = %v", err)
		}

		got, err := repo.GetProducto(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProducto() error = %v", err)
		}
		if got.Nombre != "Monitor 27'" || !got.Precio.Equal(mustDecimal(t, "249.99")) || got.Stock != 10 {
			t.Errorf("got %+v after update", got)
		}
	})

	t.Run("missing ID returns not found", func(t *testing.T) {
		ghost := &Producto{ID: 999, Nombre: "Nada", Precio: mustDecimal(t, "1.00")}
		err := repo.UpdateProducto(ctx, ghost)
		if !errors.Is(err, ErrProductoNotFound) {
			t.Errorf("UpdateProducto() error = %v, want ErrProductoNotFound", err)
		}
	})

	t.Run("other rows untouched by missing-ID update", func(t *testing.T) {
		got, err := repo.GetProducto(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetProducto() error = %v", err)
		}
		if got.Nombre != "Monitor 27'" {
			t.Errorf("Nombre = %q, want %q", got.Nombre, "Monitor 27'")
		}
	})
}

func TestUpdateStock(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p := &Producto{Nombre: "Teclado Mecánico", Precio: mustDecimal(t, "89.99"), Stock: 20}
	if err := repo.CreateProducto(ctx, p); err != nil {
		t.Fatalf("CreateProducto() error = %v", err)
	}

	if err := repo.UpdateStock(ctx, p.ID, 3); err != nil {
		t.Fatalf("UpdateStock() error = %v", err)
	}
	got, err := repo.GetProducto(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProducto() error = %v", err)
	}
	if got.Stock != 3 {
		t.Errorf("Stock = %d, want 3", got.Stock)
	}

	if err := repo.UpdateStock(ctx, 999, 1); !errors.Is(err, ErrProductoNotFound) {
		t.Errorf("UpdateStock() error = %v, want ErrProductoNotFound", err)
	}
}

func TestDeleteProducto(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	t.Run("missing ID returns not found", func(t *testing.T) {
		err := repo.DeleteProducto(ctx, 999)
		if !errors.Is(err, ErrProductoNotFound) {
			t.Errorf("DeleteProducto() error = %v, want ErrProductoNotFound", err)
		}
	})

	t.Run("deletes existing product", func(t *testing.T) {
		p := &Producto{Nombre: "Mouse Gamer", Precio: mustDecimal(t, "49.99"), Stock: 30}
		if err := repo.CreateProducto(ctx, p); err != nil {
			t.Fatalf("CreateProducto() error = %v", err)
		}
		if err := repo.DeleteProducto(ctx, p.ID); err != nil {
			t.Fatalf("DeleteProducto() error = %v", err)
		}
		if _, err := repo.GetProducto(ctx, p.ID); !errors.Is(err, ErrProductoNotFound) {
			t.Errorf("GetProducto() after delete error = %v, want ErrProductoNotFound", err)
		}
	})

	t.Run("product with sales is protected by FK", func(t *testing.T) {
		p := &Producto{Nombre: "Auriculares RGB", Precio: mustDecimal(t, "79.99"), Stock: 12}
		if err := repo.CreateProducto(ctx, p); err != nil {
			t.Fatalf("CreateProducto() error = %v", err)
		}
		v := &Venta{ProductoID: p.ID, Cantidad: 1}
		if err := repo.CreateVenta(ctx, v); err != nil {
			t.Fatalf("CreateVenta() error = %v", err)
		}
		if err := repo.DeleteProducto(ctx, p.ID); err == nil {
			t.Error("DeleteProducto() should fail while sales reference the product")
		}
	})
}

func TestCreateVenta(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p := &Producto{Nombre: "Webcam HD", Precio: mustDecimal(t, "59.99"), Stock: 8}
	if err := repo.CreateProducto(ctx, p); err != nil {
		t.Fatalf("CreateProducto() error = %v", err)
	}

	t.Run("defaults sale date to now", func(t *testing.T) {
		v := &Venta{ProductoID: p.ID, Cantidad: 2}
		if err := repo.CreateVenta(ctx, v); err != nil {
			t.Fatalf("CreateVenta() error = %v", err)
		}
		if v.ID == 0 {
			t.Fatal("CreateVenta() should set a generated ID")
		}

		ventas, err := repo.ListVentas(ctx)
		if err != nil {
			t.Fatalf("ListVentas() error = %v", err)
		}
		if len(ventas) != 1 {
			t.Fatalf("ListVentas() returned %d ventas, want 1", len(ventas))
		}
		if ventas[0].FechaVenta.IsZero() {
			t.Error("FechaVenta should default to the current time")
		}
	})

	t.Run("explicit sale date round trips", func(t *testing.T) {
		fecha := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)
		v := &Venta{ProductoID: p.ID, Cantidad: 1, FechaVenta: fecha}
		if err := repo.CreateVenta(ctx, v); err != nil {
			t.Fatalf("CreateVenta() error = %v", err)
		}

		ventas, err := repo.ListVentas(ctx)
		if err != nil {
			t.Fatalf("ListVentas() error = %v", err)
		}
		var found bool
		for _, got := range ventas {
			if got.ID == v.ID {
				found = true
				if !got.FechaVenta.Equal(fecha) {
					t.Errorf("FechaVenta = %v, want %v", got.FechaVenta, fecha)
				}
				if got.ProductoNombre != "Webcam HD" {
					t.Errorf("ProductoNombre = %q, want %q", got.ProductoNombre, "Webcam HD")
				}
			}
		}
		if !found {
			t.Error("created venta missing from ListVentas()")
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		err := repo.CreateVenta(ctx, &Venta{ProductoID: p.ID, Cantidad: 0})
		if !errors.Is(err, ErrCantidadInvalid) {
			t.Errorf("CreateVenta() error = %v, want ErrCantidadInvalid", err)
		}
	})

	t.Run("unknown product rejected by FK", func(t *testing.T) {
		err := repo.CreateVenta(ctx, &Venta{ProductoID: 999, Cantidad: 1})
		if err == nil {
			t.Error("CreateVenta() should fail for a product that does not exist")
		}
	})
}

func TestListVentas_NewestFirst(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	p := &Producto{Nombre: "Hub USB", Precio: mustDecimal(t, "29.99"), Stock: 18}
	if err := repo.CreateProducto(ctx, p); err != nil {
		t.Fatalf("CreateProducto() error = %v", err)
	}

	fechas := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, f := range fechas {
		if err := repo.CreateVenta(ctx, &Venta{ProductoID: p.ID, Cantidad: 1, FechaVenta: f}); err != nil {
			t.Fatalf("CreateVenta(%v) error = %v", f, err)
		}
	}

	ventas, err := repo.ListVentas(ctx)
	if err != nil {
		t.Fatalf("ListVentas() error = %v", err)
	}
	if len(ventas) != 3 {
		t.Fatalf("ListVentas() returned %d ventas, want 3", len(ventas))
	}
	for i := 1; i < len(ventas); i++ {
		if ventas[i].FechaVenta.After(ventas[i-1].FechaVenta) {
			t.Errorf("ventas not ordered newest first at index %d", i)
		}
	}
}
