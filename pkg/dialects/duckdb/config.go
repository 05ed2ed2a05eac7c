// Package duckdb provides the DuckDB dialect.
// This package is pure Go with no database driver dependencies.
package duckdb

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

// Config is the DuckDB dialect configuration.
var Config = &core.DialectConfig{
	Name:          "duckdb",
	DefaultSchema: "main",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	Keywords: append([]string{
		"anti", "asof", "describe", "ilike", "pivot", "positional", "qualify",
		"returning", "semi", "summarize", "unpivot",
	}, ansi.ReservedWords...),
}

// Catalog maps logical kinds to DuckDB types.
var Catalog = &dialect.Catalog{
	Dialect: "duckdb",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "INTEGER PRIMARY KEY"},
		core.String:     {Name: "VARCHAR"},
		core.Text:       {Name: "TEXT"},
		core.Integer:    {Name: "INTEGER"},
		core.Float:      {Name: "DOUBLE"},
		core.Decimal:    {Name: "DECIMAL"},
		core.Boolean:    {Name: "BOOLEAN"},
		core.Binary:     {Name: "BLOB"},
		core.Date:       {Name: "DATE"},
		core.Time:       {Name: "TIME"},
		core.DateTime:   {Name: "TIMESTAMP"},
		core.Timestamp:  {Name: "TIMESTAMP"},
	},
	Integers: dialect.IntegerWidths{Small: "SMALLINT", Standard: "INTEGER", Wide: "BIGINT"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`^(u?tinyint|u?smallint|u?integer|u?bigint|u?hugeint|int[1248]|long|short)\b`, core.Integer),
		dialect.Rule(`^(float[48]?|double|real)\b`, core.Float),
		dialect.Rule(`^(bytea|varbinary|blob)\b`, core.Binary),
		dialect.Rule(`^timestamp(tz| with time zone|_s|_ms|_ns)?\b`, core.Timestamp),
		dialect.Rule(`^(json|uuid|enum)\b`, core.String),
	},
}
