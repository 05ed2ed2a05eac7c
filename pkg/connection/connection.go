// Package connection binds one dialect to one adapter for the lifetime of a
// database session.
//
// A Connection is the only place where dialect output meets the database: it
// runs DDL plans (transactionally when a plan is atomic), reads generated keys
// back after inserts, rewrites pagination and casts query results.
// A Connection is owned by a single goroutine; it is not safe for concurrent use.
package connection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// Connection pairs a bound dialect with a connected adapter.
type Connection struct {
	dialect dialect.Dialect
	adapter adapter.Adapter
	logger  *slog.Logger

	// per-table sequence cache, filled by discovery
	sequences map[string]core.SequenceRef
}

// New binds d to an already connected adapter.
// If logger is nil, a discard logger is used.
func New(d dialect.Dialect, a adapter.Adapter, logger *slog.Logger) *Connection {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Connection{
		dialect:   d,
		adapter:   a,
		logger:    logger,
		sequences: make(map[string]core.SequenceRef),
	}
}

// Open creates the adapter registered for cfg.Type, binds the dialect it
// speaks and connects.
func Open(ctx context.Context, cfg core.AdapterConfig, opts dialect.Options, logger *slog.Logger) (*Connection, error) {
	a, err := adapter.NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	d, err := dialect.New(a.DialectName(), opts)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Type, err)
	}
	c := New(d, a, logger)
	c.logger.Debug("connection opened",
		slog.String("adapter", cfg.Type),
		slog.String("dialect", d.Name()))
	return c, nil
}

// Dialect returns the bound dialect.
func (c *Connection) Dialect() dialect.Dialect { return c.dialect }

// Adapter returns the underlying adapter.
func (c *Connection) Adapter() adapter.Adapter { return c.adapter }

// Close closes the adapter and drops cached sequences.
func (c *Connection) Close() error {
	c.ResetSequences()
	return c.adapter.Close()
}

// Begin opens a transaction. Atomic plans applied while it is open run inside it.
func (c *Connection) Begin(ctx context.Context) error { return c.adapter.Begin(ctx) }

// Commit commits the open transaction.
func (c *Connection) Commit() error { return c.adapter.Commit() }

// Rollback aborts the open transaction.
func (c *Connection) Rollback() error { return c.adapter.Rollback() }

// Execute runs one statement through the adapter.
func (c *Connection) Execute(ctx context.Context, sql, label string) (*core.RowSet, error) {
	return c.adapter.Execute(ctx, sql, label)
}

// Paginate applies the dialect's limit/offset syntax to sql.
func (c *Connection) Paginate(sql string, limit, offset int) string {
	return c.dialect.ApplyLimitOffset(sql, limit, offset)
}

// Tables lists user tables, hiding the ones the dialect marks as system tables.
func (c *Connection) Tables(ctx context.Context) ([]string, error) {
	return c.adapter.Tables(ctx, func(t core.TableInfo) bool {
		return !c.dialect.IsSystemTable(t)
	})
}

// Indexes lists the indexes of table.
func (c *Connection) Indexes(ctx context.Context, table string) ([]core.IndexInfo, error) {
	return c.adapter.Indexes(ctx, table)
}

// Columns lists the columns of table with logical types, limits and parsed
// defaults filled in by the dialect.
func (c *Connection) Columns(ctx context.Context, table string) ([]core.Column, error) {
	cols, err := c.adapter.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		col := &cols[i]
		col.Type = c.dialect.SimplifiedType(col.SQLType)
		col.Limit = c.dialect.ExtractLimit(col.SQLType)
		if col.DefaultExpr != "" {
			col.Default = c.dialect.Cast(c.dialect.ColumnDefault(col.DefaultExpr), col.Type)
		}
	}
	return cols, nil
}
