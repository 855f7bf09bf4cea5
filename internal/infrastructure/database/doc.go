// Package database provides SQLite connectivity for AulaSQL.
//
// This package manages:
//   - Database connection with WAL mode and foreign key enforcement
//   - Embedded schema migrations (idempotent: re-running Migrate is a no-op)
//   - Connection lifecycle and health checks
//
// All queries use parameterised statements; user input never reaches a SQL
// string directly.
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
