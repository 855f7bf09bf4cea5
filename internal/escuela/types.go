package escuela

// Alumno is one student record. Carrera is free text and may be empty.
// CursoID is nil for students not enrolled in any course; CursoNombre is
// populated by listing queries that join cursos.
type Alumno struct {
	ID          int64
	Nombre      string
	Email       string
	Carrera     string
	CursoID     *int64
	CursoNombre string
}

// Curso is a course students can enroll in. Names are unique.
type Curso struct {
	ID     int64
	Nombre string
}
