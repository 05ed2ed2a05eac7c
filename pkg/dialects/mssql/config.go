// Package mssql provides the Microsoft SQL Server dialect.
// This package is pure Go with no database driver dependencies.
package mssql

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

// Config is the SQL Server dialect configuration.
var Config = &core.DialectConfig{
	Name:          "mssql",
	DefaultSchema: "dbo",
	Identifiers: core.IdentifierConfig{
		Quote:         "[",
		QuoteEnd:      "]",
		Escape:        "]]",
		Normalization: core.NormCaseInsensitive,
	},
	Keywords: append([]string{
		"backup", "browse", "bulk", "clustered", "compute", "contains",
		"dbcc", "deny", "disk", "dump", "errlvl", "exec", "execute", "file",
		"fillfactor", "holdlock", "identity", "identity_insert", "kill",
		"lineno", "merge", "nocheck", "nonclustered", "percent", "pivot",
		"plan", "print", "proc", "procedure", "raiserror", "readtext",
		"rowcount", "rule", "save", "schema", "setuser", "shutdown",
		"statistics", "top", "tran", "transaction", "truncate", "tsequal",
		"unpivot", "use", "waitfor", "writetext",
	}, ansi.ReservedWords...),
}

// Catalog maps logical kinds to SQL Server types.
var Catalog = &dialect.Catalog{
	Dialect: "mssql",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "int NOT NULL IDENTITY(1,1) PRIMARY KEY"},
		core.String:     {Name: "nvarchar", Limit: 255},
		core.Text:       {Name: "nvarchar(max)"},
		core.Integer:    {Name: "int"},
		core.Float:      {Name: "float"},
		core.Decimal:    {Name: "decimal"},
		core.Boolean:    {Name: "bit"},
		core.Binary:     {Name: "varbinary(max)"},
		core.Date:       {Name: "date"},
		core.Time:       {Name: "time"},
		core.DateTime:   {Name: "datetime2"},
		core.Timestamp:  {Name: "datetime2"},
	},
	Integers: dialect.IntegerWidths{Small: "smallint", Standard: "int", Wide: "bigint"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`^n?varchar\(max\)|^n?text\b`, core.Text),
		dialect.Rule(`^varbinary\(max\)|^image\b`, core.Binary),
		dialect.Rule(`^(small)?money\b`, core.Decimal),
		dialect.Rule(`^uniqueidentifier\b`, core.String),
		dialect.Rule(`^datetime(2|offset)?\b`, core.DateTime),
	},
}
