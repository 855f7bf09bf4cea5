// Package logging provides structured logging for AulaSQL on top of log/slog.
//
// Logs go to stderr by default so they interleave cleanly with the
// interactive menu on stdout. Level, format and destination come from the
// logging section of config.yaml.
package logging
