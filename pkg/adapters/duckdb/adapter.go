// Package duckdb provides a DuckDB database adapter for leaprecord.
package duckdb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

const defaultSchema = "main"

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	if err := a.Open(ctx, "duckdb", path, cfg); err != nil {
		return err
	}
	for _, stmt := range params.sessionStatements() {
		if _, err := a.Execute(ctx, stmt, "session"); err != nil {
			_ = a.Close()
			return fmt.Errorf("failed to apply session setting: %w", err)
		}
	}
	return nil
}

func (a *Adapter) schema() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return defaultSchema
}

// Tables lists base tables of the attached databases.
func (a *Adapter) Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error) {
	return a.TablesFrom(ctx, `
		SELECT table_schema, table_name, table_type
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		ORDER BY table_schema, table_name
	`, a.schema(), keep)
}

// Indexes lists the indexes of table. duckdb_indexes() reports the indexed
// expressions as a single list literal, which is split into column names.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	rs, err := a.Query(ctx, `
		SELECT index_name, is_unique, expressions
		FROM duckdb_indexes()
		WHERE schema_name = ? AND table_name = ?
		ORDER BY index_name
	`, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	out := make([]core.IndexInfo, 0, rs.Len())
	for i := range rs.Rows {
		idxName, _ := rs.Get(i, "index_name")
		unique, _ := rs.Get(i, "is_unique")
		exprs, _ := rs.Get(i, "expressions")
		isUnique, _ := dialect.ParseBoolToken(unique.String())
		out = append(out, core.IndexInfo{
			Name:    idxName.String(),
			Table:   table,
			Unique:  isUnique,
			Columns: splitExpressions(exprs.String()),
		})
	}
	return out, nil
}

// splitExpressions turns "[a, \"B\"]" into [a B].
func splitExpressions(list string) []string {
	list = strings.TrimSpace(list)
	list = strings.TrimSuffix(strings.TrimPrefix(list, "["), "]")
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		cols = append(cols, strings.Trim(strings.TrimSpace(p), `"'`))
	}
	return cols
}

// Columns lists the columns of table from duckdb_columns().
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	return a.ColumnsFrom(ctx, table, `
		SELECT c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_index AS ordinal_position,
			c.column_default,
			EXISTS (
				SELECT 1 FROM duckdb_constraints() k
				WHERE k.schema_name = c.schema_name
					AND k.table_name = c.table_name
					AND k.constraint_type = 'PRIMARY KEY'
					AND list_contains(k.constraint_column_names, c.column_name)
			) AS is_pk
		FROM duckdb_columns() c
		WHERE c.schema_name = ? AND c.table_name = ?
		ORDER BY c.column_index
	`, schema, name)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
