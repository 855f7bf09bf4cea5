// AulaSQL - aprende SQL con bases de datos reales.
//
// An interactive console for practicing relational-database fundamentals:
// student records on a local SQLite file and an inventory/sales system
// that can also run against PostgreSQL. Every query the menu runs is real,
// parameterized SQL against a real engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/abdielLopezpy/aulasql/migrations"

	"github.com/abdielLopezpy/aulasql/internal/auditoria"
	"github.com/abdielLopezpy/aulasql/internal/escuela"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/config"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/database"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/logging"
	"github.com/abdielLopezpy/aulasql/internal/infrastructure/postgres"
	"github.com/abdielLopezpy/aulasql/internal/inventario"
	"github.com/abdielLopezpy/aulasql/internal/menu"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on Ctrl+C or SIGTERM so the menu exits cleanly mid-session.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting AulaSQL", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath)

	// Open the local database and bring the schema up to date
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Info("database migrations complete")

	// The inventory module prefers PostgreSQL when one is configured and
	// falls back to the local SQLite database otherwise.
	invRepo, crearTablas, backend, pgClient, err := connectInventario(ctx, cfg, db, log)
	if err != nil {
		return err
	}
	if pgClient != nil {
		defer func() {
			log.Info("closing PostgreSQL connection")
			pgClient.Close()
		}()
	}

	if err := healthCheck(ctx, db, pgClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	m := menu.New(menu.Config{
		In:                    os.Stdin,
		Out:                   os.Stdout,
		Alumnos:               escuela.NewSQLiteRepository(db.DB),
		Inventario:            invRepo,
		Registro:              auditoria.NewSQLiteRepository(db.DB),
		Logger:                log,
		MigrarEsquema:         db.Migrate,
		CrearTablasInventario: crearTablas,
		Backend:               backend,
	})

	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}

	log.Info("AulaSQL stopped")
	return nil
}

// connectInventario picks the inventory backend. When PostgreSQL is enabled
// in config it must be reachable; otherwise the SQLite repository is used.
func connectInventario(
	ctx context.Context,
	cfg *config.Config,
	db *database.DB,
	log *logging.Logger,
) (inventario.Repository, func(context.Context) error, string, *postgres.Client, error) {
	if !cfg.Postgres.Enabled {
		log.Info("PostgreSQL disabled, inventory runs on SQLite")
		return inventario.NewSQLiteRepository(db.DB), db.Migrate, "SQLite", nil, nil
	}

	client, err := postgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, "", nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	if err := client.EnsureSchema(ctx); err != nil {
		client.Close()
		return nil, nil, "", nil, fmt.Errorf("creating PostgreSQL schema: %w", err)
	}
	log.Info("PostgreSQL connected",
		"host", cfg.Postgres.Host,
		"port", cfg.Postgres.Port,
		"database", cfg.Postgres.Database,
	)
	return inventario.NewPgxRepository(client.Pool()), client.EnsureSchema, "PostgreSQL", client, nil
}

// getConfigPath returns the configuration file path.
// Uses AULASQL_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("AULASQL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies the database connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, pgClient *postgres.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if pgClient != nil {
		if err := pgClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}
