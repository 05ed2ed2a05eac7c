// Package postgres provides the PostgreSQL dialect.
// This package is pure Go with no database driver dependencies.
package postgres

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// Config is the PostgreSQL dialect configuration.
var Config = &core.DialectConfig{
	Name:          "postgres",
	DefaultSchema: "public",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase, // Postgres normalizes unquoted to lowercase
	},
	Keywords: postgresReservedWords,
}

// Catalog maps logical kinds to PostgreSQL types.
var Catalog = &dialect.Catalog{
	Dialect: "postgres",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "serial primary key"},
		core.String:     {Name: "character varying", Limit: 255},
		core.Text:       {Name: "text"},
		core.Integer:    {Name: "integer"},
		core.Float:      {Name: "float"},
		core.Decimal:    {Name: "decimal"},
		core.Boolean:    {Name: "boolean"},
		core.Binary:     {Name: "bytea"},
		core.Date:       {Name: "date"},
		core.Time:       {Name: "time"},
		core.DateTime:   {Name: "timestamp"},
		core.Timestamp:  {Name: "timestamp"},
	},
	Integers: dialect.IntegerWidths{Small: "smallint", Standard: "integer", Wide: "bigint"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`^serial`, core.Integer),
		dialect.Rule(`^money`, core.Decimal),
		dialect.Rule(`^(json|jsonb|xml|tsvector)\b`, core.Text),
	},
}
