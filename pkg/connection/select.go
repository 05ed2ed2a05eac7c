package connection

import (
	"context"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// Result is a query result with every value cast to a logical kind.
type Result struct {
	Columns []string
	Rows    [][]core.Value
}

// Select runs sql and casts column i with kinds[i]. Columns without a kind
// are returned as strings.
func (c *Connection) Select(ctx context.Context, sql string, kinds ...core.LogicalType) (*Result, error) {
	rs, err := c.adapter.Execute(ctx, sql, "select")
	if err != nil {
		return nil, err
	}
	return c.castRows(rs, kinds), nil
}

// SelectPage paginates sql before running it.
func (c *Connection) SelectPage(ctx context.Context, sql string, limit, offset int, kinds ...core.LogicalType) (*Result, error) {
	return c.Select(ctx, c.Paginate(sql, limit, offset), kinds...)
}

// SelectValue runs sql and casts the first column of its first row.
// An empty result yields a null value.
func (c *Connection) SelectValue(ctx context.Context, sql string, kind core.LogicalType) (core.Value, error) {
	rs, err := c.adapter.SelectOne(ctx, sql, "select value")
	if err != nil {
		return core.Null(), err
	}
	return c.dialect.Cast(rs.First(), kind), nil
}

func (c *Connection) castRows(rs *core.RowSet, kinds []core.LogicalType) *Result {
	res := &Result{Columns: rs.Columns, Rows: make([][]core.Value, 0, rs.Len())}
	for _, raw := range rs.Rows {
		row := make([]core.Value, len(raw))
		for i, v := range raw {
			kind := core.String
			if i < len(kinds) && kinds[i] != core.Unspecified {
				kind = kinds[i]
			}
			row[i] = c.dialect.Cast(v, kind)
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
