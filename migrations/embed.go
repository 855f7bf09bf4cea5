// Package migrations embeds the SQL schema files into the binary, so the
// database can be created on first run without any files on disk.
package migrations

import (
	"embed"

	"github.com/abdielLopezpy/aulasql/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
