// Package sqlite provides the SQLite dialect.
// This package is pure Go with no database driver dependencies.
package sqlite

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

// Config is the SQLite dialect configuration.
var Config = &core.DialectConfig{
	Name:          "sqlite",
	DefaultSchema: "main",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	Keywords: append([]string{
		"abort", "autoincrement", "conflict", "glob", "indexed", "isnull",
		"notnull", "pragma", "raise", "regexp", "replace", "vacuum",
	}, ansi.ReservedWords...),
}

// Catalog maps logical kinds to SQLite declared types.
var Catalog = &dialect.Catalog{
	Dialect: "sqlite",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL"},
		core.String:     {Name: "varchar", Limit: 255},
		core.Text:       {Name: "text"},
		core.Integer:    {Name: "integer"},
		core.Float:      {Name: "float"},
		core.Decimal:    {Name: "decimal"},
		core.Boolean:    {Name: "boolean"},
		core.Binary:     {Name: "blob"},
		core.Date:       {Name: "date"},
		core.Time:       {Name: "time"},
		core.DateTime:   {Name: "datetime"},
		core.Timestamp:  {Name: "datetime"},
	},
	Integers: dialect.IntegerWidths{Small: "smallint", Standard: "integer", Wide: "bigint"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`^$`, core.String),
		dialect.Rule(`^numeric\b`, core.Decimal),
	},
}
