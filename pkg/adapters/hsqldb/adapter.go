// Package hsqldb provides an HSQLDB adapter for leaprecord.
//
// There is no native Go driver for HSQLDB. The adapter runs over any
// database/sql driver the host program registers (an ODBC or JDBC bridge),
// named by options.driver with its connection string in options.dsn.
package hsqldb

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

const defaultSchema = "PUBLIC"

// ErrDriverRequired is returned when options.driver is not set.
var ErrDriverRequired = errors.New("hsqldb adapter requires options.driver naming a registered database/sql driver")

// Adapter implements the adapter.Adapter interface for HSQLDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new HSQLDB adapter instance.
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
	return "hsqldb"
}

// Connect opens options.dsn with options.driver. Path is used as the DSN
// when options.dsn is empty.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	driver := cfg.Option("driver", "")
	if driver == "" {
		return ErrDriverRequired
	}
	dsn := cfg.Option("dsn", cfg.Path)

	a.Logger.Debug("connecting to hsqldb", slog.String("driver", driver))

	return a.Open(ctx, driver, dsn, cfg)
}

func (a *Adapter) schema() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return defaultSchema
}

// Tables lists tables from INFORMATION_SCHEMA.SYSTEM_TABLES, including system
// tables so that keep can reject them by type.
func (a *Adapter) Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error) {
	return a.TablesFrom(ctx, `
		SELECT TABLE_SCHEM AS table_schema, TABLE_NAME AS table_name, TABLE_TYPE AS table_type
		FROM INFORMATION_SCHEMA.SYSTEM_TABLES
		ORDER BY TABLE_SCHEM, TABLE_NAME
	`, a.schema(), keep)
}

// Indexes lists non-primary indexes of table.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	return a.IndexesFrom(ctx, table, `
		SELECT INDEX_NAME AS index_name,
			CASE WHEN NON_UNIQUE THEN 0 ELSE 1 END AS is_unique,
			COLUMN_NAME AS column_name
		FROM INFORMATION_SCHEMA.SYSTEM_INDEXINFO
		WHERE TABLE_SCHEM = ? AND TABLE_NAME = ? AND INDEX_NAME NOT LIKE 'SYS_IDX_SYS_PK%'
		ORDER BY INDEX_NAME, ORDINAL_POSITION
	`, schema, name)
}

// Columns lists the columns of table.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema, name := adapter.ParseQualifiedName(table, a.schema())
	return a.ColumnsFrom(ctx, table, `
		SELECT c.COLUMN_NAME AS column_name,
			CASE WHEN c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL
				THEN c.DATA_TYPE || '(' || c.CHARACTER_MAXIMUM_LENGTH || ')'
				ELSE c.DATA_TYPE END AS data_type,
			c.IS_NULLABLE AS is_nullable,
			c.ORDINAL_POSITION AS ordinal_position,
			c.COLUMN_DEFAULT AS column_default,
			CASE WHEN c.IS_IDENTITY = 'YES' THEN 1 ELSE 0 END AS is_pk
		FROM INFORMATION_SCHEMA.COLUMNS c
		WHERE c.TABLE_SCHEMA = ? AND c.TABLE_NAME = ?
		ORDER BY c.ORDINAL_POSITION
	`, schema, name)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
