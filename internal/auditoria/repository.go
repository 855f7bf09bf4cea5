// Package auditoria provides the append-only operation log stored in
// operaciones_log. Every successful mutation in the menu records one entry
// so sessions can be reviewed afterwards.
package auditoria

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operacion is a single entry in the operation log.
type Operacion struct {
	ID          string         `json:"id"`
	Operacion   string         `json:"operacion"`
	Descripcion string         `json:"descripcion"`
	Actor       string         `json:"actor"`
	Detalles    map[string]any `json:"detalles,omitempty"`
	CreadoEn    time.Time      `json:"creado_en"`
}

// Operation types recorded by the menu handlers.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpSeed   = "seed"
)

// Filter controls which log entries to return.
type Filter struct {
	Operacion string // optional: filter by operation type
	Actor     string // optional: filter by actor
	Limit     int    // default 50, max 200
	Offset    int    // pagination offset
}

// ListResult contains paginated log entries.
type ListResult struct {
	Operaciones []Operacion `json:"operaciones"`
	Total       int         `json:"total"`
	Limit       int         `json:"limit"`
	Offset      int         `json:"offset"`
}

// Repository defines the interface for operation log access.
type Repository interface {
	Create(ctx context.Context, op *Operacion) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores the operation log in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new operation log repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new log entry. ID, Actor and CreadoEn are generated or
// defaulted if empty.
func (r *SQLiteRepository) Create(ctx context.Context, op *Operacion) error {
	if op.ID == "" {
		op.ID = "op-" + uuid.NewString()[:8]
	}
	if op.Actor == "" {
		op.Actor = "consola"
	}
	if op.CreadoEn.IsZero() {
		op.CreadoEn = time.Now().UTC()
	}

	var detallesJSON *string
	if op.Detalles != nil {
		b, err := json.Marshal(op.Detalles)
		if err != nil {
			return fmt.Errorf("marshalling operation details: %w", err)
		}
		s := string(b)
		detallesJSON = &s
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operaciones_log (id, operacion, descripcion, actor, detalles, creado_en)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		op.ID, op.Operacion, op.Descripcion, op.Actor, detallesJSON,
		op.CreadoEn.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting operation log entry: %w", err)
	}
	return nil
}

// List returns log entries matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	// Clamp limit.
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 { //nolint:mnd // max page size for log queries
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Build WHERE clause dynamically.
	var conditions []string
	var args []any

	if filter.Operacion != "" {
		conditions = append(conditions, "operacion = ?")
		args = append(args, filter.Operacion)
	}
	if filter.Actor != "" {
		conditions = append(conditions, "actor = ?")
		args = append(args, filter.Actor)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM operaciones_log %s", where) //nolint:gosec // WHERE built from parameterised conditions, not user input
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting operation log entries: %w", err)
	}

	query := fmt.Sprintf( //nolint:gosec // WHERE built from parameterised conditions, not user input
		"SELECT id, operacion, descripcion, actor, detalles, creado_en FROM operaciones_log %s ORDER BY creado_en DESC, id LIMIT ? OFFSET ?",
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying operation log: %w", err)
	}
	defer rows.Close()

	var ops []Operacion
	for rows.Next() {
		var op Operacion
		var detallesJSON sql.NullString
		var creadoEn string

		if err := rows.Scan(&op.ID, &op.Operacion, &op.Descripcion,
			&op.Actor, &detallesJSON, &creadoEn); err != nil {
			return nil, fmt.Errorf("scanning operation log entry: %w", err)
		}

		if detallesJSON.Valid && detallesJSON.String != "" {
			var detalles map[string]any
			if json.Unmarshal([]byte(detallesJSON.String), &detalles) == nil {
				op.Detalles = detalles
			}
		}

		t, err := time.Parse(time.RFC3339, creadoEn)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05Z", creadoEn)
			if err != nil {
				return nil, fmt.Errorf("parsing operation log timestamp %q: %w", creadoEn, err)
			}
		}
		op.CreadoEn = t

		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operation log entries: %w", err)
	}

	if ops == nil {
		ops = []Operacion{}
	}

	return &ListResult{
		Operaciones: ops,
		Total:       total,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}, nil
}
