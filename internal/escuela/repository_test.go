package escuela

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

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

func TestCreateAlumno(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	t.Run("round trip preserves values", func(t *testing.T) {
		a := &Alumno{Nombre: "Ana Torres", Email: "ana@example.com", Carrera: "Ingeniería"}
		if err := repo.CreateAlumno(ctx, a); err != nil {
			t.Fatalf("CreateAlumno() error = %v", err)
		}
		if a.ID == 0 {
			t.Fatal("CreateAlumno() should set a generated ID")
		}

		got, err := repo.GetAlumno(ctx, a.ID)
		if err != nil {
			t.Fatalf("GetAlumno() error = %v", err)
		}
		if got.Nombre != "Ana Torres" || got.Email != "ana@example.com" || got.Carrera != "Ingeniería" {
			t.Errorf("GetAlumno() = %+v", got)
		}
		if got.CursoID != nil {
			t.Errorf("CursoID = %v, want nil for unenrolled student", *got.CursoID)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		if err := repo.CreateAlumno(ctx, &Alumno{Email: "x@example.com"}); !errors.Is(err, ErrNombreRequired) {
			t.Errorf("error = %v, want ErrNombreRequired", err)
		}
		if err := repo.CreateAlumno(ctx, &Alumno{Nombre: "Sin Correo"}); !errors.Is(err, ErrEmailRequired) {
			t.Errorf("error = %v, want ErrEmailRequired", err)
		}
	})

	t.Run("unknown curso rejected by FK", func(t *testing.T) {
		missing := int64(999)
		a := &Alumno{Nombre: "Luis", Email: "luis@example.com", CursoID: &missing}
		if err := repo.CreateAlumno(ctx, a); err == nil {
			t.Error("CreateAlumno() should fail for a course that does not exist")
		}
	})
}

func TestListAlumnos_JoinsCurso(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	curso := &Curso{Nombre: "Bases de Datos"}
	if err := repo.CreateCurso(ctx, curso); err != nil {
		t.Fatalf("CreateCurso() error = %v", err)
	}

	enrolled := &Alumno{Nombre: "Ana", Email: "ana@example.com", CursoID: &curso.ID}
	if err := repo.CreateAlumno(ctx, enrolled); err != nil {
		t.Fatalf("CreateAlumno() error = %v", err)
	}
	loose := &Alumno{Nombre: "Beto", Email: "beto@example.com"}
	if err := repo.CreateAlumno(ctx, loose); err != nil {
		t.Fatalf("CreateAlumno() error = %v", err)
	}

	alumnos, err := repo.ListAlumnos(ctx)
	if err != nil {
		t.Fatalf("ListAlumnos() error = %v", err)
	}
	if len(alumnos) != 2 {
		t.Fatalf("ListAlumnos() returned %d alumnos, want 2", len(alumnos))
	}
	if alumnos[0].CursoNombre != "Bases de Datos" {
		t.Errorf("enrolled CursoNombre = %q, want %q", alumnos[0].CursoNombre, "Bases de Datos")
	}
	if alumnos[1].CursoNombre != "" || alumnos[1].CursoID != nil {
		t.Errorf("unenrolled student should have empty course: %+v", alumnos[1])
	}
}

func TestUpdateNombre(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	a := &Alumno{Nombre: "Carlos", Email: "carlos@example.com"}
	if err := repo.CreateAlumno(ctx, a); err != nil {
		t.Fatalf("CreateAlumno() error = %v", err)
	}

	t.Run("renames existing student", func(t *testing.T) {
		if err := repo.UpdateNombre(ctx, a.ID, "Carlos Méndez"); err != nil {
			t.Fatalf("UpdateNombre() error = %v", err)
		}
		got, err := repo.GetAlumno(ctx, a.ID)
		if err != nil {
			t.Fatalf("GetAlumno() error = %v", err)
		}
		if got.Nombre != "Carlos Méndez" {
			t.Errorf("Nombre = %q, want %q", got.Nombre, "Carlos Méndez")
		}
	})

	t.Run("missing ID returns not found", func(t *testing.T) {
		err := repo.UpdateNombre(ctx, 999, "Nadie")
		if !errors.Is(err, ErrAlumnoNotFound) {
			t.Errorf("UpdateNombre() error = %v, want ErrAlumnoNotFound", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := repo.UpdateNombre(ctx, a.ID, "  ")
		if !errors.Is(err, ErrNombreRequired) {
			t.Errorf("UpdateNombre() error = %v, want ErrNombreRequired", err)
		}
	})
}

func TestDeleteAlumno(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	a := &Alumno{Nombre: "Diana", Email: "diana@example.com"}
	if err := repo.CreateAlumno(ctx, a); err != nil {
		t.Fatalf("CreateAlumno() error = %v", err)
	}
	b := &Alumno{Nombre: "Elena", Email: "elena@example.com"}
	if err := repo.CreateAlumno(ctx, b); err != nil {
		t.Fatalf("CreateAlumno() error = %v", err)
	}

	t.Run("missing ID returns not found", func(t *testing.T) {
		err := repo.DeleteAlumno(ctx, 999)
		if !errors.Is(err, ErrAlumnoNotFound) {
			t.Errorf("DeleteAlumno() error = %v, want ErrAlumnoNotFound", err)
		}
	})

	t.Run("deletes only the targeted student", func(t *testing.T) {
		if err := repo.DeleteAlumno(ctx, a.ID); err != nil {
			t.Fatalf("DeleteAlumno() error = %v", err)
		}
		if _, err := repo.GetAlumno(ctx, a.ID); !errors.Is(err, ErrAlumnoNotFound) {
			t.Errorf("GetAlumno() after delete error = %v, want ErrAlumnoNotFound", err)
		}
		if _, err := repo.GetAlumno(ctx, b.ID); err != nil {
			t.Errorf("other student should survive: %v", err)
		}
	})
}

func TestCreateCurso(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	c := &Curso{Nombre: "SQL Avanzado"}
	if err := repo.CreateCurso(ctx, c); err != nil {
		t.Fatalf("CreateCurso() error = %v", err)
	}
	if c.ID == 0 {
		t.Fatal("CreateCurso() should set a generated ID")
	}

	t.Run("duplicate name rejected", func(t *testing.T) {
		dup := &Curso{Nombre: "SQL Avanzado"}
		if err := repo.CreateCurso(ctx, dup); err == nil {
			t.Error("CreateCurso() should fail for duplicate name")
		}
	})

	t.Run("listed in name order", func(t *testing.T) {
		if err := repo.CreateCurso(ctx, &Curso{Nombre: "Álgebra"}); err != nil {
			t.Fatalf("CreateCurso() error = %v", err)
		}
		cursos, err := repo.ListCursos(ctx)
		if err != nil {
			t.Fatalf("ListCursos() error = %v", err)
		}
		if len(cursos) != 2 {
			t.Fatalf("ListCursos() returned %d cursos, want 2", len(cursos))
		}
		if cursos[0].Nombre > cursos[1].Nombre {
			t.Errorf("cursos not ordered by name: %q before %q", cursos[0].Nombre, cursos[1].Nombre)
		}
	})
}
