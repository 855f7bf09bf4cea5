// Package escuela implements the student-records domain: the alumnos table
// with its optional link to cursos. It backs the CRUD side of the menu and
// runs on the local SQLite database only.
package escuela
