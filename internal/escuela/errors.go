package escuela

import "errors"

// Sentinel errors for student-record operations, checkable with errors.Is().
var (
	// ErrAlumnoNotFound indicates the requested student does not exist.
	ErrAlumnoNotFound = errors.New("alumno not found")

	// ErrCursoNotFound indicates the requested course does not exist.
	ErrCursoNotFound = errors.New("curso not found")

	// ErrNombreRequired indicates a record was submitted without a name.
	ErrNombreRequired = errors.New("nombre is required")

	// ErrEmailRequired indicates a student was submitted without an email.
	ErrEmailRequired = errors.New("alumno email is required")
)
