package menu

import (
	"context"
	"fmt"

	"github.com/abdielLopezpy/aulasql/internal/auditoria"
	"github.com/abdielLopezpy/aulasql/internal/escuela"
)

// runEscuela drives the student-records submenu until the user goes back.
func (m *Menu) runEscuela(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, sectionStyle.Render("ALUMNOS Y CURSOS"))
		fmt.Fprintln(m.out, "1) Crear tablas")
		fmt.Fprintln(m.out, "2) Insertar alumno")
		fmt.Fprintln(m.out, "3) Ver alumnos")
		fmt.Fprintln(m.out, "4) Actualizar nombre de alumno")
		fmt.Fprintln(m.out, "5) Eliminar alumno")
		fmt.Fprintln(m.out, "6) Crear curso")
		fmt.Fprintln(m.out, "7) Ver cursos")
		fmt.Fprintln(m.out, "8) Volver")

		opcion, ok := m.prompt("Elige una opción")
		if !ok {
			return
		}

		switch opcion {
		case "1":
			m.handle(m.crearTablasEscuela(ctx))
		case "2":
			m.handle(m.insertarAlumno(ctx))
		case "3":
			m.handle(m.verAlumnos(ctx))
		case "4":
			m.handle(m.actualizarAlumno(ctx))
		case "5":
			m.handle(m.eliminarAlumno(ctx))
		case "6":
			m.handle(m.crearCurso(ctx))
		case "7":
			m.handle(m.verCursos(ctx))
		case "8":
			return
		default:
			m.invalid(opcion)
		}
	}
}

func (m *Menu) crearTablasEscuela(ctx context.Context) error {
	if err := m.migrarEsquema(ctx); err != nil {
		return err
	}
	m.ok("Tablas creadas (o ya existían)")
	return nil
}

func (m *Menu) insertarAlumno(ctx context.Context) error {
	nombre, ok := m.prompt("Nombre")
	if !ok {
		return nil
	}
	email, ok := m.prompt("Email")
	if !ok {
		return nil
	}
	carrera, ok := m.prompt("Carrera (opcional)")
	if !ok {
		return nil
	}
	cursoStr, ok := m.prompt("ID de curso (vacío = ninguno)")
	if !ok {
		return nil
	}

	a := &escuela.Alumno{Nombre: nombre, Email: email, Carrera: carrera}
	if cursoStr != "" {
		id, err := parseID(cursoStr)
		if err != nil {
			return err
		}
		a.CursoID = &id
	}

	if err := m.alumnos.CreateAlumno(ctx, a); err != nil {
		return err
	}
	m.ok("Alumno %q registrado con ID=%d", a.Nombre, a.ID)
	m.registrar(ctx, auditoria.OpInsert,
		fmt.Sprintf("alumno %q registrado", a.Nombre),
		map[string]any{"alumno_id": a.ID})
	return nil
}

func (m *Menu) verAlumnos(ctx context.Context) error {
	alumnos, err := m.alumnos.ListAlumnos(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("ALUMNOS"))
	if len(alumnos) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("No hay alumnos registrados"))
		return nil
	}
	for _, a := range alumnos {
		curso := "-"
		if a.CursoNombre != "" {
			curso = a.CursoNombre
		}
		fmt.Fprintf(m.out, "ID: %-4d %-24s %-28s %-18s %s\n",
			a.ID, a.Nombre, a.Email, a.Carrera, mutedStyle.Render(curso))
	}
	return nil
}

func (m *Menu) actualizarAlumno(ctx context.Context) error {
	id, err := m.promptInt64("ID del alumno")
	if err != nil {
		return err
	}
	nombre, ok := m.prompt("Nuevo nombre")
	if !ok {
		return nil
	}

	if err := m.alumnos.UpdateNombre(ctx, id, nombre); err != nil {
		return err
	}
	m.ok("Alumno ID=%d renombrado a %q", id, nombre)
	m.registrar(ctx, auditoria.OpUpdate,
		fmt.Sprintf("alumno %d renombrado a %q", id, nombre),
		map[string]any{"alumno_id": id})
	return nil
}

func (m *Menu) eliminarAlumno(ctx context.Context) error {
	id, err := m.promptInt64("ID del alumno a eliminar")
	if err != nil {
		return err
	}

	if err := m.alumnos.DeleteAlumno(ctx, id); err != nil {
		return err
	}
	m.ok("Alumno ID=%d eliminado", id)
	m.registrar(ctx, auditoria.OpDelete,
		fmt.Sprintf("alumno %d eliminado", id),
		map[string]any{"alumno_id": id})
	return nil
}

func (m *Menu) crearCurso(ctx context.Context) error {
	nombre, ok := m.prompt("Nombre del curso")
	if !ok {
		return nil
	}

	c := &escuela.Curso{Nombre: nombre}
	if err := m.alumnos.CreateCurso(ctx, c); err != nil {
		return err
	}
	m.ok("Curso %q creado con ID=%d", c.Nombre, c.ID)
	m.registrar(ctx, auditoria.OpInsert,
		fmt.Sprintf("curso %q creado", c.Nombre),
		map[string]any{"curso_id": c.ID})
	return nil
}

func (m *Menu) verCursos(ctx context.Context) error {
	cursos, err := m.alumnos.ListCursos(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, headerStyle.Render("CURSOS"))
	if len(cursos) == 0 {
		fmt.Fprintln(m.out, warnStyle.Render("No hay cursos registrados"))
		return nil
	}
	for _, c := range cursos {
		fmt.Fprintf(m.out, "ID: %-4d %s\n", c.ID, c.Nombre)
	}
	return nil
}
