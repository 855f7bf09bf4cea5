package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/abdielLopezpy/aulasql/internal/auditoria"
	"github.com/abdielLopezpy/aulasql/internal/escuela"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/logging"
	"github.com/abdielLopezpy/aulasql/internal/inventario"
)

// Config wires the menu to its dependencies.
type Config struct {
	// In is the input stream, normally os.Stdin.
	In io.Reader

	// Out is where menus and results are printed, normally os.Stdout.
	Out io.Writer

	Alumnos    escuela.Repository
	Inventario inventario.Repository
	Registro   auditoria.Repository
	Logger     *logging.Logger

	// MigrarEsquema re-runs the idempotent local schema setup. Wired to
	// the "crear tablas" option of the student menu.
	MigrarEsquema func(ctx context.Context) error

	// CrearTablasInventario runs the idempotent schema setup for the
	// active inventory backend.
	CrearTablasInventario func(ctx context.Context) error

	// Backend names the active inventory backend for display
	// ("SQLite" or "PostgreSQL").
	Backend string
}

// Menu is the interactive console loop.
type Menu struct {
	in  *bufio.Scanner
	out io.Writer

	alumnos    escuela.Repository
	inventario inventario.Repository
	registro   auditoria.Repository
	log        *logging.Logger

	migrarEsquema         func(ctx context.Context) error
	crearTablasInventario func(ctx context.Context) error
	backend               string
}

// New creates a menu from its configuration.
func New(cfg Config) *Menu {
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Menu{
		in:                    bufio.NewScanner(cfg.In),
		out:                   cfg.Out,
		alumnos:               cfg.Alumnos,
		inventario:            cfg.Inventario,
		registro:              cfg.Registro,
		log:                   log,
		migrarEsquema:         cfg.MigrarEsquema,
		crearTablasInventario: cfg.CrearTablasInventario,
		backend:               cfg.Backend,
	}
}

// Run drives the main loop until the user exits, input ends, or the
// context is cancelled. Handler errors are printed and the loop resumes.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, titleStyle.Render("=== AulaSQL ==="))
	fmt.Fprintln(m.out, mutedStyle.Render("Aprende SQL con bases de datos reales"))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, sectionStyle.Render("MENÚ PRINCIPAL"))
		fmt.Fprintln(m.out, "1) Alumnos y cursos (SQLite)")
		fmt.Fprintf(m.out, "2) Inventario y ventas (%s)\n", m.backend)
		fmt.Fprintln(m.out, "3) Registro de operaciones")
		fmt.Fprintln(m.out, "4) Salir")

		opcion, ok := m.prompt("Elige una opción")
		if !ok {
			return nil
		}

		switch opcion {
		case "1":
			m.runEscuela(ctx)
		case "2":
			m.runInventario(ctx)
		case "3":
			m.handle(m.verRegistro(ctx))
		case "4":
			fmt.Fprintln(m.out, okStyle.Render("¡Hasta luego!"))
			return nil
		default:
			m.invalid(opcion)
		}
	}
}

// handle prints a handler error, if any, and lets the loop resume.
func (m *Menu) handle(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(m.out, errStyle.Render("Error: ")+err.Error())
	m.log.Warn("menu operation failed", "error", err)
}

// invalid reports an unrecognized menu option.
func (m *Menu) invalid(opcion string) {
	fmt.Fprintln(m.out, errStyle.Render("Opción inválida: ")+opcion)
}

// ok prints a success line.
func (m *Menu) ok(format string, args ...any) {
	fmt.Fprintln(m.out, okStyle.Render("✔ ")+fmt.Sprintf(format, args...))
}

// prompt reads one trimmed input line. Returns false when input ends.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprintf(m.out, "%s: ", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// parseID parses a numeric ID typed by the user.
func parseID(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q no es un número entero", s)
	}
	return n, nil
}

// promptInt64 reads an integer ID.
func (m *Menu) promptInt64(label string) (int64, error) {
	s, ok := m.prompt(label)
	if !ok {
		return 0, io.EOF
	}
	return parseID(s)
}

// promptInt reads a small integer (quantities, stock levels).
func (m *Menu) promptInt(label string) (int, error) {
	n, err := m.promptInt64(label)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// promptDecimal reads a fixed-point amount such as a price.
func (m *Menu) promptDecimal(label string) (decimal.Decimal, error) {
	s, ok := m.prompt(label)
	if !ok {
		return decimal.Zero, io.EOF
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es un importe válido", s)
	}
	return d, nil
}

// registrar writes an operation log entry. Log failures are reported but
// never fail the operation that succeeded.
func (m *Menu) registrar(ctx context.Context, operacion, descripcion string, detalles map[string]any) {
	op := &auditoria.Operacion{
		Operacion:   operacion,
		Descripcion: descripcion,
		Detalles:    detalles,
	}
	if err := m.registro.Create(ctx, op); err != nil {
		m.log.Warn("recording operation log entry failed", "error", err)
	}
}

// verRegistro renders the most recent operation log entries, optionally
// filtered by operation type.
func (m *Menu) verRegistro(ctx context.Context) error {
	tipo, ok := m.prompt("Tipo de operación (insert/update/delete/seed, vacío = todas)")
	if !ok {
		return nil
	}

	result, err := m.registro.List(ctx, auditoria.Filter{Operacion: tipo})
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("REGISTRO DE OPERACIONES"))
	if len(result.Operaciones) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("No hay operaciones registradas"))
		return nil
	}
	for _, op := range result.Operaciones {
		fmt.Fprintf(m.out, "%s  %-7s %s  %s\n",
			op.CreadoEn.Format("2006-01-02 15:04:05"),
			op.Operacion,
			mutedStyle.Render("["+op.Actor+"]"),
			op.Descripcion)
	}
	fmt.Fprintln(m.out, mutedStyle.Render(
		fmt.Sprintf("%d de %d operaciones", len(result.Operaciones), result.Total)))
	return nil
}
