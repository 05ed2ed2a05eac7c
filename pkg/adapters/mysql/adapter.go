// Package mysql provides a MySQL/MariaDB database adapter for leaprecord.
package mysql

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
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
	return "mysql"
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))
	return a.Open(ctx, "mysql", buildMySQLDSN(cfg), cfg)
}

// buildMySQLDSN renders cfg through the driver's own DSN formatter. Options
// other than the reserved "driver" key become connection parameters.
func buildMySQLDSN(cfg core.AdapterConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	for k, v := range cfg.Options {
		if k == "driver" {
			continue
		}
		if mc.Params == nil {
			mc.Params = map[string]string{}
		}
		mc.Params[k] = v
	}
	return mc.FormatDSN()
}

// Tables lists base tables of the current database.
func (a *Adapter) Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error) {
	return a.TablesFrom(ctx, `
		SELECT table_schema AS table_schema, table_name AS table_name, table_type AS table_type
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE' AND table_schema = DATABASE()
		ORDER BY table_name
	`, a.Cfg.Database, keep)
}

// Indexes lists secondary indexes of table.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	schema, name := adapter.ParseQualifiedName(table, a.Cfg.Database)
	return a.IndexesFrom(ctx, table, `
		SELECT index_name AS index_name,
			CASE WHEN non_unique = 0 THEN 1 ELSE 0 END AS is_unique,
			column_name AS column_name
		FROM information_schema.statistics
		WHERE table_schema = ? AND table_name = ? AND index_name <> 'PRIMARY'
		ORDER BY index_name, seq_in_index
	`, schema, name)
}

// Columns lists the columns of table using the full column_type.
func (a *Adapter) Columns(ctx context.Context, table string) ([]core.Column, error) {
	schema, name := adapter.ParseQualifiedName(table, a.Cfg.Database)
	return a.ColumnsFrom(ctx, table, `
		SELECT column_name AS column_name,
			column_type AS data_type,
			is_nullable AS is_nullable,
			ordinal_position AS ordinal_position,
			column_default AS column_default,
			CASE WHEN column_key = 'PRI' THEN 1 ELSE 0 END AS is_pk
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`, schema, name)
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
