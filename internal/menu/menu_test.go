package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdielLopezpy/aulasql/internal/auditoria"
	"github.com/abdielLopezpy/aulasql/internal/escuela"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/database"
	"github.com/abdielLopezpy/aulasql/internal/inventario"
	_ "github.com/abdielLopezpy/aulasql/migrations" // Registers the embedded schema
)

// newTestMenu builds a menu over a migrated temporary database, fed with
// the scripted input lines.
func newTestMenu(t *testing.T, input string) (*Menu, *bytes.Buffer, *auditoria.SQLiteRepository) {
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

	registro := auditoria.NewSQLiteRepository(db.DB)
	var out bytes.Buffer
	m := New(Config{
		In:                    strings.NewReader(input),
		Out:                   &out,
		Alumnos:               escuela.NewSQLiteRepository(db.DB),
		Inventario:            inventario.NewSQLiteRepository(db.DB),
		Registro:              registro,
		MigrarEsquema:         db.Migrate,
		CrearTablasInventario: db.Migrate,
		Backend:               "SQLite",
	})
	return m, &out, registro
}

func TestRun_Exit(t *testing.T) {
	m, out, _ := newTestMenu(t, "4\n")

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "MENÚ PRINCIPAL") {
		t.Error("main menu was not printed")
	}
	if !strings.Contains(out.String(), "¡Hasta luego!") {
		t.Error("exit message was not printed")
	}
}

func TestRun_EndOfInput(t *testing.T) {
	m, _, _ := newTestMenu(t, "")

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() on empty input error = %v", err)
	}
}

func TestRun_InvalidOptionResumes(t *testing.T) {
	m, out, _ := newTestMenu(t, "99\n4\n")

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Opción inválida") {
		t.Error("invalid option was not reported")
	}
	if !strings.Contains(out.String(), "¡Hasta luego!") {
		t.Error("loop did not resume after invalid option")
	}
}

func TestRun_InsertarAlumno(t *testing.T) {
	// Student menu: insert Ana, list students, back, exit.
	script := strings.Join([]string{
		"1",               // alumnos submenu
		"2",               // insertar alumno
		"Ana Torres",      // nombre
		"ana@example.com", // email
		"Ingeniería",      // carrera
		"",                // sin curso
		"3",               // ver alumnos
		"8",               // volver
		"4",               // salir
	}, "\n") + "\n"
	m, out, registro := newTestMenu(t, script)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Ana Torres") {
		t.Error("inserted student missing from listing")
	}

	result, err := registro.List(context.Background(), auditoria.Filter{Operacion: auditoria.OpInsert})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("operation log has %d insert entries, want 1", result.Total)
	}
}

func TestRun_SeedAndAnalytics(t *testing.T) {
	// Inventory menu: load sample data (confirmed), run basic analytics,
	// back, exit.
	script := strings.Join([]string{
		"2",  // inventario submenu
		"2",  // cargar datos de ejemplo
		"s",  // confirmar
		"9",  // analytics básicos
		"12", // volver
		"4",  // salir
	}, "\n") + "\n"
	m, out, registro := newTestMenu(t, script)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Datos de ejemplo cargados") {
		t.Error("seed confirmation missing")
	}
	if !strings.Contains(text, "Monitor 24'") {
		t.Error("best-seller report missing the top product")
	}
	if !strings.Contains(text, "3199.95") {
		t.Error("daily sales report missing the 2024-03-25 revenue")
	}

	result, err := registro.List(context.Background(), auditoria.Filter{Operacion: auditoria.OpSeed})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("operation log has %d seed entries, want 1", result.Total)
	}
}

func TestRun_ProductoLifecycle(t *testing.T) {
	// Register a product, reprice it, then delete it.
	script := strings.Join([]string{
		"2",       // inventario submenu
		"3",       // registrar producto
		"Teclado", // nombre
		"49.99",   // precio
		"10",      // stock
		"7",       // actualizar producto
		"1",       // id
		"39.99",   // nuevo precio
		"12",      // nuevo stock
		"8",       // eliminar producto
		"1",       // id
		"12",      // volver
		"4",       // salir
	}, "\n") + "\n"
	m, out, registro := newTestMenu(t, script)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Actual: Teclado | $49.99 | stock 10") {
		t.Error("current product values were not shown before updating")
	}
	if !strings.Contains(text, `Producto "Teclado" actualizado`) {
		t.Error("product update was not confirmed")
	}
	if !strings.Contains(text, "Producto ID=1 eliminado") {
		t.Error("product deletion was not confirmed")
	}

	for _, op := range []string{auditoria.OpInsert, auditoria.OpUpdate, auditoria.OpDelete} {
		result, err := registro.List(context.Background(), auditoria.Filter{Operacion: op})
		if err != nil {
			t.Fatalf("List(%s) error = %v", op, err)
		}
		if result.Total != 1 {
			t.Errorf("operation log has %d %s entries, want 1", result.Total, op)
		}
	}
}

func TestRun_SeedDeclined(t *testing.T) {
	script := strings.Join([]string{"2", "2", "n", "12", "4"}, "\n") + "\n"
	m, out, registro := newTestMenu(t, script)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Operación cancelada") {
		t.Error("declined seed was not reported as cancelled")
	}

	result, err := registro.List(context.Background(), auditoria.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if result.Total != 0 {
		t.Errorf("operation log has %d entries after declined seed, want 0", result.Total)
	}
}

func TestRun_HandlerErrorResumes(t *testing.T) {
	// Deleting a student that does not exist prints an error and the loop
	// keeps going.
	script := strings.Join([]string{"1", "5", "999", "8", "4"}, "\n") + "\n"
	m, out, _ := newTestMenu(t, script)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "alumno not found") {
		t.Error("handler error was not printed")
	}
	if !strings.Contains(out.String(), "¡Hasta luego!") {
		t.Error("loop did not resume after handler error")
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	m, _, _ := newTestMenu(t, "4\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Run(ctx); err == nil {
		t.Error("Run() should return the context error when cancelled")
	}
}
