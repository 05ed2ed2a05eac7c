package connection

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// Apply executes a schema plan. Atomic plans run inside one transaction and
// are rolled back completely when any statement fails. When the caller already
// holds a transaction the plan joins it and the caller decides its outcome.
func (c *Connection) Apply(ctx context.Context, plan dialect.Plan) error {
	if len(plan.Statements) == 0 {
		return nil
	}
	log := c.logger.With(
		slog.String("op", plan.Op),
		slog.String("table", plan.Table))

	if !plan.Atomic {
		for _, stmt := range plan.Statements {
			log.Debug("applying schema change", slog.String("sql", stmt))
			if _, err := c.adapter.Execute(ctx, stmt, plan.Op); err != nil {
				return ddlError(plan, stmt, err)
			}
		}
		return nil
	}

	owned := true
	if err := c.adapter.Begin(ctx); err != nil {
		if !errors.Is(err, core.ErrTxInProgress) {
			return ddlError(plan, "", err)
		}
		owned = false
	}

	for _, stmt := range plan.Statements {
		log.Debug("applying schema change", slog.String("sql", stmt), slog.Bool("atomic", true))
		if _, err := c.adapter.Execute(ctx, stmt, plan.Op); err != nil {
			if !owned {
				log.Warn("schema change failed inside caller transaction", slog.String("error", err.Error()))
				return ddlError(plan, stmt, err)
			}
			if rbErr := c.adapter.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
			log.Warn("schema change rolled back", slog.String("sql", stmt), slog.String("error", err.Error()))
			return ddlError(plan, stmt, err)
		}
	}

	if owned {
		if err := c.adapter.Commit(); err != nil {
			return ddlError(plan, "", err)
		}
	}
	return nil
}

func ddlError(plan dialect.Plan, stmt string, err error) error {
	return &core.DDLError{
		Op:        plan.Op,
		Table:     plan.Table,
		Column:    plan.Column,
		Statement: stmt,
		Err:       err,
	}
}

func (c *Connection) apply(ctx context.Context, plan dialect.Plan, err error) error {
	if err != nil {
		return err
	}
	return c.Apply(ctx, plan)
}

// AddColumn adds a column to table.
func (c *Connection) AddColumn(ctx context.Context, table, column string, kind core.LogicalType, opts core.ColumnOptions) error {
	plan, err := c.dialect.AddColumn(table, column, kind, opts)
	return c.apply(ctx, plan, err)
}

// ChangeColumn changes the type (and optionally the default) of a column.
func (c *Connection) ChangeColumn(ctx context.Context, table, column string, kind core.LogicalType, opts core.ColumnOptions) error {
	plan, err := c.dialect.ChangeColumn(table, column, kind, opts)
	return c.apply(ctx, plan, err)
}

// ChangeColumnDefault sets the default of a column; a null value drops it.
func (c *Connection) ChangeColumnDefault(ctx context.Context, table, column string, def core.Value) error {
	plan, err := c.dialect.ChangeColumnDefault(table, column, def)
	return c.apply(ctx, plan, err)
}

// RenameColumn renames a column.
func (c *Connection) RenameColumn(ctx context.Context, table, from, to string) error {
	plan, err := c.dialect.RenameColumn(table, from, to)
	return c.apply(ctx, plan, err)
}

// RenameTable renames a table and forgets the sequences cached under both names.
func (c *Connection) RenameTable(ctx context.Context, from, to string) error {
	plan, err := c.dialect.RenameTable(from, to)
	if err = c.apply(ctx, plan, err); err != nil {
		return err
	}
	c.ForgetSequence(from)
	c.ForgetSequence(to)
	return nil
}

// RemoveColumn drops a column.
func (c *Connection) RemoveColumn(ctx context.Context, table, column string) error {
	plan, err := c.dialect.RemoveColumn(table, column)
	return c.apply(ctx, plan, err)
}

// AddIndex creates an index on columns of table.
func (c *Connection) AddIndex(ctx context.Context, table string, columns []string, opts dialect.IndexOptions) error {
	plan, err := c.dialect.AddIndex(table, columns, opts)
	return c.apply(ctx, plan, err)
}

// RemoveIndex drops an index, addressed by name or by its columns.
func (c *Connection) RemoveIndex(ctx context.Context, table string, ref dialect.IndexRef) error {
	plan, err := c.dialect.RemoveIndex(table, ref)
	return c.apply(ctx, plan, err)
}
