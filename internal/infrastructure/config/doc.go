// Package config loads AulaSQL configuration from YAML with environment
// variable overrides.
//
// Configuration covers the two storage backends (a local SQLite file and an
// optional PostgreSQL server) plus logging. Defaults are chosen so the
// programme runs out of the box with no config file edits and no database
// server: SQLite only, text logs on stderr.
//
// Credentials policy: the PostgreSQL password belongs in the
// AULASQL_POSTGRES_PASSWORD environment variable, not in config.yaml and
// never in source.
package config
