package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// readVerbs are the head tokens of statements that return rows.
var readVerbs = map[string]bool{
	"select":   true,
	"show":     true,
	"with":     true,
	"values":   true,
	"pragma":   true,
	"explain":  true,
	"describe": true,
	"call":     true,
}

// ReturnsRows reports whether sql is dispatched as a query.
func ReturnsRows(sql string) bool {
	return readVerbs[dialect.HeadToken(sql)]
}

// runner is satisfied by both *sql.Conn and *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get the session,
// transaction and statement dispatch behaviour.
//
// The adapter pins a single *sql.Conn so that session-scoped functions such as
// currval or LAST_INSERT_ID observe the statements that preceded them.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.AdapterConfig
	Logger *slog.Logger

	conn *sql.Conn
	tx   *sql.Tx
}

// Open opens driverName with dsn, verifies it and pins a session.
func (b *BaseSQLAdapter) Open(ctx context.Context, driverName, dsn string, cfg core.AdapterConfig) error {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open %s connection: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping %s: %w", driverName, err)
	}
	if err := b.Attach(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	b.Cfg = cfg
	return nil
}

// Attach pins a session from an already opened database handle.
func (b *BaseSQLAdapter) Attach(ctx context.Context, db *sql.DB) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	b.DB = db
	b.conn = conn
	return nil
}

// Close rolls back any open transaction and closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB == nil {
		return nil
	}
	b.logger().Debug("closing database connection")
	if b.tx != nil {
		_ = b.tx.Rollback()
		b.tx = nil
	}
	var errs []error
	if b.conn != nil {
		errs = append(errs, b.conn.Close())
		b.conn = nil
	}
	errs = append(errs, b.DB.Close())
	b.DB = nil
	return errors.Join(errs...)
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.conn != nil
}

// InTransaction reports whether a transaction is open.
func (b *BaseSQLAdapter) InTransaction() bool {
	return b.tx != nil
}

// Begin opens a transaction on the pinned session.
func (b *BaseSQLAdapter) Begin(ctx context.Context) error {
	if b.conn == nil {
		return core.ErrNotConnected
	}
	if b.tx != nil {
		return core.ErrTxInProgress
	}
	tx, err := b.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	b.tx = tx
	return nil
}

// Commit commits the open transaction.
func (b *BaseSQLAdapter) Commit() error {
	if b.tx == nil {
		return core.ErrNoTransaction
	}
	tx := b.tx
	b.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback aborts the open transaction.
func (b *BaseSQLAdapter) Rollback() error {
	if b.tx == nil {
		return core.ErrNoTransaction
	}
	tx := b.tx
	b.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

func (b *BaseSQLAdapter) runner() (runner, error) {
	if b.tx != nil {
		return b.tx, nil
	}
	if b.conn == nil {
		return nil, core.ErrNotConnected
	}
	return b.conn, nil
}

func (b *BaseSQLAdapter) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// Execute runs one statement, reading rows when its head token is a query verb.
func (b *BaseSQLAdapter) Execute(ctx context.Context, sqlStr, label string) (*core.RowSet, error) {
	if ReturnsRows(sqlStr) {
		return b.query(ctx, sqlStr, label, 0)
	}
	r, err := b.runner()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := r.ExecContext(ctx, sqlStr)
	b.logStatement(label, sqlStr, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to execute SQL: %w", err)
	}
	rs := &core.RowSet{}
	if n, err := res.RowsAffected(); err == nil {
		rs.RowsAffected = n
	}
	return rs, nil
}

// SelectOne runs a query and keeps only its first row.
func (b *BaseSQLAdapter) SelectOne(ctx context.Context, sqlStr, label string) (*core.RowSet, error) {
	return b.query(ctx, sqlStr, label, 1)
}

// Query runs a parameterised query. Adapters use it for catalog lookups.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*core.RowSet, error) {
	return b.query(ctx, sqlStr, "", 0, args...)
}

func (b *BaseSQLAdapter) query(ctx context.Context, sqlStr, label string, limit int, args ...any) (*core.RowSet, error) {
	r, err := b.runner()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := r.QueryContext(ctx, sqlStr, args...)
	b.logStatement(label, sqlStr, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return ScanRows(rows, limit)
}

func (b *BaseSQLAdapter) logStatement(label, sqlStr string, start time.Time, err error) {
	if label == "" {
		label = "SQL"
	}
	attrs := []any{
		slog.String("label", label),
		slog.String("sql", sqlStr),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		b.logger().Debug("statement failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	b.logger().Debug("statement executed", attrs...)
}

// ScanRows converts every row into raw values. limit > 0 stops after that many rows.
func ScanRows(rows *sql.Rows, limit int) (*core.RowSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	rs := &core.RowSet{Columns: cols}
	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make([]core.RawValue, len(cols))
		for i, v := range dest {
			row[i] = core.RawFromDriver(v)
		}
		rs.Rows = append(rs.Rows, row)
		if limit > 0 && len(rs.Rows) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return rs, nil
}

// ParseQualifiedName splits a table reference into schema and name.
// Uses defaultSchema if not specified.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return defaultSchema, table
}

// TablesFrom runs a listing query returning table_schema, table_name and
// table_type. Tables outside defaultSchema are returned schema-qualified.
func (b *BaseSQLAdapter) TablesFrom(ctx context.Context, query, defaultSchema string, keep func(core.TableInfo) bool, args ...any) ([]string, error) {
	rs, err := b.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	var names []string
	for i := range rs.Rows {
		info := core.TableInfo{
			Schema: field(rs, i, "table_schema"),
			Name:   field(rs, i, "table_name"),
			Type:   field(rs, i, "table_type"),
		}
		if keep != nil && !keep(info) {
			continue
		}
		if info.Schema == "" || strings.EqualFold(info.Schema, defaultSchema) {
			names = append(names, info.Name)
		} else {
			names = append(names, info.Schema+"."+info.Name)
		}
	}
	return names, nil
}

// IndexesFrom runs a query returning one row per indexed column with
// index_name, is_unique and column_name, ordered by index and position.
func (b *BaseSQLAdapter) IndexesFrom(ctx context.Context, table, query string, args ...any) ([]core.IndexInfo, error) {
	rs, err := b.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	var out []core.IndexInfo
	pos := map[string]int{}
	for i := range rs.Rows {
		name := field(rs, i, "index_name")
		j, ok := pos[name]
		if !ok {
			unique, _ := dialect.ParseBoolToken(field(rs, i, "is_unique"))
			out = append(out, core.IndexInfo{Name: name, Table: table, Unique: unique})
			j = len(out) - 1
			pos[name] = j
		}
		if col := field(rs, i, "column_name"); col != "" {
			out[j].Columns = append(out[j].Columns, col)
		}
	}
	return out, nil
}

// ColumnsFrom runs a query returning column_name, data_type, is_nullable,
// ordinal_position, column_default and optionally is_pk.
func (b *BaseSQLAdapter) ColumnsFrom(ctx context.Context, table, query string, args ...any) ([]core.Column, error) {
	rs, err := b.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	if rs.Len() == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}
	cols := make([]core.Column, 0, rs.Len())
	for i := range rs.Rows {
		col := core.Column{
			Name:     field(rs, i, "column_name"),
			SQLType:  field(rs, i, "data_type"),
			Nullable: isYes(field(rs, i, "is_nullable")),
		}
		if v, ok := rs.Get(i, "column_default"); ok && v.Valid() {
			col.DefaultExpr = v.String()
		}
		if v := field(rs, i, "is_pk"); v != "" {
			col.PrimaryKey = isYes(v)
		}
		col.Position, _ = strconv.Atoi(field(rs, i, "ordinal_position"))
		cols = append(cols, col)
	}
	return cols, nil
}

func field(rs *core.RowSet, i int, name string) string {
	v, _ := rs.Get(i, name)
	return v.String()
}

func isYes(s string) bool {
	v, ok := dialect.ParseBoolToken(s)
	return ok && v
}
