package escuela

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Repository defines the interface for student-record persistence.
type Repository interface {
	CreateAlumno(ctx context.Context, a *Alumno) error
	ListAlumnos(ctx context.Context) ([]Alumno, error)
	GetAlumno(ctx context.Context, id int64) (*Alumno, error)
	UpdateNombre(ctx context.Context, id int64, nombre string) error
	DeleteAlumno(ctx context.Context, id int64) error

	CreateCurso(ctx context.Context, c *Curso) error
	ListCursos(ctx context.Context) ([]Curso, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed student repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateAlumno inserts a new student and sets a.ID from the generated key.
// A nil CursoID leaves the student unenrolled; a non-nil one must reference
// an existing course or the FK rejects the insert.
func (r *SQLiteRepository) CreateAlumno(ctx context.Context, a *Alumno) error {
	if strings.TrimSpace(a.Nombre) == "" {
		return ErrNombreRequired
	}
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmailRequired
	}
	const query = `INSERT INTO alumnos (nombre, email, carrera, curso_id) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, a.Nombre, a.Email, a.Carrera, nullID(a.CursoID))
	if err != nil {
		return fmt.Errorf("inserting alumno %q: %w", a.Nombre, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading alumno id: %w", err)
	}
	a.ID = id
	return nil
}

// ListAlumnos returns all students ordered by ID, with the course name
// joined in for enrolled students.
func (r *SQLiteRepository) ListAlumnos(ctx context.Context) ([]Alumno, error) {
	const query = `SELECT a.id, a.nombre, a.email, a.carrera, a.curso_id, c.nombre
		FROM alumnos a
		LEFT JOIN cursos c ON a.curso_id = c.id
		ORDER BY a.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying alumnos: %w", err)
	}
	defer rows.Close()

	var alumnos []Alumno
	for rows.Next() {
		a, err := scanAlumnoRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alumno row: %w", err)
		}
		alumnos = append(alumnos, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alumno rows: %w", err)
	}
	return alumnos, nil
}

// GetAlumno returns a single student by ID.
func (r *SQLiteRepository) GetAlumno(ctx context.Context, id int64) (*Alumno, error) {
	const query = `SELECT a.id, a.nombre, a.email, a.carrera, a.curso_id, c.nombre
		FROM alumnos a
		LEFT JOIN cursos c ON a.curso_id = c.id
		WHERE a.id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var a Alumno
	var carrera, cursoNombre sql.NullString
	var cursoID sql.NullInt64
	err := row.Scan(&a.ID, &a.Nombre, &a.Email, &carrera, &cursoID, &cursoNombre)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAlumnoNotFound
		}
		return nil, fmt.Errorf("scanning alumno: %w", err)
	}
	a.Carrera = carrera.String
	if cursoID.Valid {
		a.CursoID = &cursoID.Int64
	}
	a.CursoNombre = cursoNombre.String
	return &a, nil
}

// UpdateNombre renames a student. Returns ErrAlumnoNotFound if the ID does
// not exist.
func (r *SQLiteRepository) UpdateNombre(ctx context.Context, id int64, nombre string) error {
	if strings.TrimSpace(nombre) == "" {
		return ErrNombreRequired
	}
	result, err := r.db.ExecContext(ctx, `UPDATE alumnos SET nombre = ? WHERE id = ?`, nombre, id)
	if err != nil {
		return fmt.Errorf("updating alumno %d: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrAlumnoNotFound
	}
	return nil
}

// DeleteAlumno removes a single student by ID.
// Returns ErrAlumnoNotFound if the student does not exist.
func (r *SQLiteRepository) DeleteAlumno(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM alumnos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting alumno %d: %w", id, err)
	}
	n, _ := result.RowsAffected() //nolint:errcheck // SQLite always supports RowsAffected
	if n == 0 {
		return ErrAlumnoNotFound
	}
	return nil
}

// CreateCurso inserts a new course and sets c.ID from the generated key.
// Course names are unique; duplicates are rejected by the schema.
func (r *SQLiteRepository) CreateCurso(ctx context.Context, c *Curso) error {
	if strings.TrimSpace(c.Nombre) == "" {
		return ErrNombreRequired
	}
	result, err := r.db.ExecContext(ctx, `INSERT INTO cursos (nombre) VALUES (?)`, c.Nombre)
	if err != nil {
		return fmt.Errorf("inserting curso %q: %w", c.Nombre, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading curso id: %w", err)
	}
	c.ID = id
	return nil
}

// ListCursos returns all courses ordered by name.
func (r *SQLiteRepository) ListCursos(ctx context.Context) ([]Curso, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nombre FROM cursos ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("querying cursos: %w", err)
	}
	defer rows.Close()

	var cursos []Curso
	for rows.Next() {
		var c Curso
		if err := rows.Scan(&c.ID, &c.Nombre); err != nil {
			return nil, fmt.Errorf("scanning curso row: %w", err)
		}
		cursos = append(cursos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating curso rows: %w", err)
	}
	return cursos, nil
}

// scanAlumnoRow scans a student from a Rows cursor.
func scanAlumnoRow(rows *sql.Rows) (*Alumno, error) {
	var a Alumno
	var carrera, cursoNombre sql.NullString
	var cursoID sql.NullInt64

	err := rows.Scan(&a.ID, &a.Nombre, &a.Email, &carrera, &cursoID, &cursoNombre)
	if err != nil {
		return nil, err
	}
	a.Carrera = carrera.String
	if cursoID.Valid {
		a.CursoID = &cursoID.Int64
	}
	a.CursoNombre = cursoNombre.String
	return &a, nil
}

// nullID converts a *int64 to sql.NullInt64 for nullable FK columns.
func nullID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
