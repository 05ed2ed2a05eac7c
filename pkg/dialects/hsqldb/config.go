// Package hsqldb provides the HSQLDB dialect.
// This package is pure Go with no database driver dependencies.
package hsqldb

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

// Config is the HSQLDB dialect configuration.
var Config = &core.DialectConfig{
	Name:          "hsqldb",
	DefaultSchema: "PUBLIC",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase, // HSQLDB folds unquoted names to upper case
	},
	Keywords: append([]string{"identity", "top", "limit", "position", "value", "month", "year", "day"}, ansi.ReservedWords...),
}

// Catalog maps logical kinds to HSQLDB types. All temporal kinds share DATETIME,
// so the midnight-collapse rule decides between date and datetime on read.
var Catalog = &dialect.Catalog{
	Dialect: "hsqldb",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "INTEGER GENERATED BY DEFAULT AS IDENTITY(START WITH 0) PRIMARY KEY"},
		core.String:     {Name: "VARCHAR", Limit: 255},
		core.Text:       {Name: "LONGVARCHAR"},
		core.Integer:    {Name: "INTEGER"},
		core.Float:      {Name: "FLOAT", Limit: 17},
		core.Decimal:    {Name: "DECIMAL"},
		core.Boolean:    {Name: "BOOLEAN"},
		core.Binary:     {Name: "LONGVARBINARY"},
		core.Date:       {Name: "DATETIME"},
		core.Time:       {Name: "DATETIME"},
		core.DateTime:   {Name: "DATETIME"},
		core.Timestamp:  {Name: "DATETIME"},
	},
	Integers: dialect.IntegerWidths{Small: "SMALLINT", Standard: "INTEGER", Wide: "BIGINT"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`longvarchar`, core.Text),
	},
}
