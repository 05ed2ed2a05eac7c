// Package sqlite provides an SQLite database adapter for leaprecord, backed by
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

const defaultSchema = "main"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
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
	return "sqlite"
}

// Connect opens the database file at cfg.Path, or an in-memory database when
// the path is empty or ":memory:". Pragmas from params run on the session.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	if err := a.Open(ctx, "sqlite", path, cfg); err != nil {
		return err
	}
	for _, stmt := range params.PragmaStatements() {
		if _, err := a.Execute(ctx, stmt, "pragma"); err != nil {
			_ = a.Close()
			return fmt.Errorf("failed to apply pragma: %w", err)
		}
	}
	return nil
}

// Tables lists tables from sqlite_master.
func (a *Adapter) Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error) {
	return a.TablesFrom(ctx, `
		SELECT 'main' AS table_schema, name AS table_name, type AS table_type
		FROM sqlite_master
		WHERE type = 'table'
		ORDER BY name
	`, defaultSchema, keep)
}

// Indexes lists explicitly created indexes of table.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	_, name := adapter.ParseQualifiedName(table, defaultSchema)
	return a.IndexesFrom(ctx, table, `
		SELECT il.name AS index_name, il."unique" AS is_unique, ii.name AS column_name
		FROM pragma_index_list(?) il
		JOIN pragma_index_info(il.name) ii
		WHERE il.origin = 'c'
		ORDER BY il.name, ii.seqno
	`, name)
}

// Columns lists the columns of table from PRAGMA table_info.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	_, name := adapter.ParseQualifiedName(table, defaultSchema)
	return a.ColumnsFrom(ctx, table, `
		SELECT name AS column_name,
			type AS data_type,
			CASE WHEN "notnull" = 0 THEN 'YES' ELSE 'NO' END AS is_nullable,
			cid + 1 AS ordinal_position,
			dflt_value AS column_default,
			pk > 0 AS is_pk
		FROM pragma_table_info(?)
		ORDER BY cid
	`, name)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
