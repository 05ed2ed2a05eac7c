// Package adapter provides the database adapter contract the connection layer
// executes dialect output against.
//
// This package contains the public contract that all database adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// Querier executes SQL text and returns raw driver results.
type Querier interface {
	// Execute runs one statement. Row-returning statements fill Rows; others
	// report RowsAffected. label names the statement in logs.
	Execute(ctx context.Context, sql, label string) (*core.RowSet, error)

	// SelectOne runs a query and returns at most its first row.
	SelectOne(ctx context.Context, sql, label string) (*core.RowSet, error)
}

// Adapter defines the interface that all database adapters must implement.
// An adapter owns one database session: statements, transactions and
// session-scoped identity functions all run on the same backend connection.
type Adapter interface {
	Querier

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close closes the database connection and releases resources.
	Close() error

	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// Tables lists user tables; keep filters out system tables.
	Tables(ctx context.Context, keep func(core.TableInfo) bool) ([]string, error)

	// Indexes lists the indexes of table, excluding the primary key.
	Indexes(ctx context.Context, table string) ([]core.IndexInfo, error)

	// Columns lists the columns of table with their native types and stored
	// default expressions. Logical types are filled in by the dialect.
	Columns(ctx context.Context, table string) ([]core.Column, error)

	// DialectName returns the name of the dialect this adapter speaks.
	DialectName() string
}
