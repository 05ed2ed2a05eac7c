package connection

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

var errTableUnknown = errors.New("insert target table unknown")

// InsertOptions describe how the generated key of an insert is found.
type InsertOptions struct {
	// Table overrides the table read from the statement.
	Table string
	// PrimaryKey names the key column; empty means "id".
	PrimaryKey string
	// ID is a key the caller already knows. When set it is returned as is.
	ID core.Value
	// Sequence skips discovery on sequence dialects.
	Sequence core.SequenceRef
}

// Insert executes an insert statement and returns the generated key.
func (c *Connection) Insert(ctx context.Context, sql string, opts InsertOptions) (core.Value, error) {
	if _, err := c.adapter.Execute(ctx, sql, "insert"); err != nil {
		return core.Null(), err
	}
	if !opts.ID.IsNull() {
		return opts.ID, nil
	}
	table := opts.Table
	if table == "" {
		table = dialect.InsertTable(sql)
	}
	return c.LastInsertID(ctx, table, opts)
}

// LastInsertID reads the key generated by the most recent insert into table.
// Failures are reported as *core.IdentityError.
func (c *Connection) LastInsertID(ctx context.Context, table string, opts InsertOptions) (core.Value, error) {
	if table == "" {
		return core.Null(), &core.IdentityError{Err: errTableUnknown}
	}

	switch c.dialect.IdentityKind() {
	case dialect.IdentityDirect:
		c.logger.Debug("reading identity", slog.String("table", table), slog.String("path", "direct"))
		return c.readIdentity(ctx, table, "", c.dialect.IdentityQuery(table))

	case dialect.IdentitySequence:
		seq := opts.Sequence
		if seq.IsZero() {
			var err error
			if seq, err = c.Sequence(ctx, table, opts.PrimaryKey); err != nil {
				return core.Null(), err
			}
		}
		c.logger.Debug("reading identity",
			slog.String("table", table),
			slog.String("path", "sequence"),
			slog.String("sequence", seq.String()))
		return c.readIdentity(ctx, table, seq.String(), c.dialect.CurrentValueQuery(seq))

	default:
		return core.Null(), &core.IdentityError{
			Table: table,
			Err:   &core.UnsupportedOperationError{Dialect: c.dialect.Name(), Op: "identity"},
		}
	}
}

func (c *Connection) readIdentity(ctx context.Context, table, seq, query string) (core.Value, error) {
	rs, err := c.adapter.SelectOne(ctx, query, "identity")
	if err != nil {
		return core.Null(), &core.IdentityError{Table: table, Sequence: seq, Err: err}
	}
	id := c.dialect.Cast(rs.First(), core.Integer)
	if id.IsNull() {
		return core.Null(), &core.IdentityError{Table: table, Sequence: seq}
	}
	return id, nil
}

// Sequence returns the sequence feeding the primary key of table, running
// the dialect's discovery lookups in order on a cache miss.
func (c *Connection) Sequence(ctx context.Context, table, primaryKey string) (core.SequenceRef, error) {
	if seq, ok := c.sequences[table]; ok {
		return seq, nil
	}
	var lastErr error
	for _, lookup := range c.dialect.SequenceLookups(table, primaryKey) {
		rs, err := c.adapter.SelectOne(ctx, lookup.SQL, lookup.Name)
		if err != nil {
			c.logger.Debug("sequence lookup failed",
				slog.String("table", table),
				slog.String("lookup", lookup.Name),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if seq, ok := lookup.Extract(rs); ok {
			c.sequences[table] = seq
			return seq, nil
		}
	}
	return core.SequenceRef{}, &core.IdentityError{Table: table, Err: lastErr}
}

// ForgetSequence drops the cached sequence of table.
func (c *Connection) ForgetSequence(table string) {
	delete(c.sequences, table)
}

// ResetSequences drops every cached sequence.
func (c *Connection) ResetSequences() {
	clear(c.sequences)
}
