// Package postgres provides a PostgreSQL database adapter for leaprecord.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "github.com/lib/pq"              // lib/pq driver

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

const defaultSchema = "public"

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return "postgres"
}

// Connect establishes a connection to PostgreSQL and applies session params.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	params, err := ParseParams(cfg.Params)
	if err != nil {
		return err
	}
	driver := driverName(cfg)

	a.Logger.Debug("connecting to postgres",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database),
		slog.String("driver", driver))

	if err := a.Open(ctx, driver, buildPostgresDSN(cfg), cfg); err != nil {
		return err
	}
	return a.applySession(ctx, params)
}

func (a *Adapter) applySession(ctx context.Context, params *Params) error {
	for _, stmt := range params.SessionStatements() {
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

// Tables lists base tables visible to the session.
func (a *Adapter) Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error) {
	return a.TablesFrom(ctx, `
		SELECT table_schema, table_name, table_type
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		ORDER BY table_schema, table_name
	`, a.schema(), keep)
}

// Indexes lists non-primary indexes of table with columns in key order.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	return a.IndexesFrom(ctx, table, `
		SELECT i.relname AS index_name, ix.indisunique AS is_unique, attr.attname AS column_name
		FROM pg_class t
		JOIN pg_namespace ns ON ns.oid = t.relnamespace
		JOIN pg_index ix ON ix.indrelid = t.oid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute attr ON attr.attrelid = t.oid AND attr.attnum = k.attnum
		WHERE ns.nspname = $1 AND t.relname = $2 AND NOT ix.indisprimary
		ORDER BY i.relname, k.ord
	`, schema, name)
}

// Columns lists the columns of table with formatted types and default expressions.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	return a.ColumnsFrom(ctx, table, `
		SELECT attr.attname AS column_name,
			format_type(attr.atttypid, attr.atttypmod) AS data_type,
			CASE WHEN attr.attnotnull THEN 'NO' ELSE 'YES' END AS is_nullable,
			attr.attnum AS ordinal_position,
			pg_get_expr(def.adbin, def.adrelid) AS column_default,
			COALESCE(pk.indisprimary, false) AS is_pk
		FROM pg_attribute attr
		JOIN pg_class t ON t.oid = attr.attrelid
		JOIN pg_namespace ns ON ns.oid = t.relnamespace
		LEFT JOIN pg_attrdef def ON def.adrelid = attr.attrelid AND def.adnum = attr.attnum
		LEFT JOIN pg_index pk ON pk.indrelid = attr.attrelid AND pk.indisprimary AND attr.attnum = ANY(pk.indkey)
		WHERE ns.nspname = $1 AND t.relname = $2 AND attr.attnum > 0 AND NOT attr.attisdropped
		ORDER BY attr.attnum
	`, schema, name)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
