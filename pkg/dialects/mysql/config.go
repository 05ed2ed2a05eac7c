// Package mysql provides the MySQL dialect.
// This package is pure Go with no database driver dependencies.
package mysql

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
	"before", "between", "bigint", "binary", "blob", "both", "by", "call",
	"cascade", "case", "change", "char", "check", "collate", "column",
	"condition", "constraint", "convert", "create", "cross", "current_date",
	"current_time", "current_timestamp", "current_user", "database",
	"databases", "default", "delete", "desc", "describe", "distinct", "div",
	"double", "drop", "else", "exists", "explain", "false", "fetch", "float",
	"for", "force", "foreign", "from", "fulltext", "grant", "group", "having",
	"if", "ignore", "in", "index", "inner", "insert", "int", "integer",
	"interval", "into", "is", "join", "key", "keys", "kill", "leading",
	"left", "like", "limit", "lines", "load", "lock", "long", "match", "mod",
	"natural", "not", "null", "numeric", "on", "option", "or", "order",
	"outer", "primary", "procedure", "range", "read", "real", "references",
	"regexp", "rename", "replace", "require", "restrict", "return", "revoke",
	"right", "rlike", "schema", "select", "set", "show", "smallint", "sql",
	"table", "then", "to", "trigger", "true", "union", "unique", "unlock",
	"unsigned", "update", "usage", "use", "using", "values", "varchar",
	"when", "where", "while", "with", "write", "xor",
}

// Config is the MySQL dialect configuration.
var Config = &core.DialectConfig{
	Name:          "mysql",
	DefaultSchema: "",
	Identifiers: core.IdentifierConfig{
		Quote:         "`",
		QuoteEnd:      "`",
		Escape:        "``",
		Normalization: core.NormCaseSensitive,
	},
	Keywords: mysqlReservedWords,
}

// Catalog maps logical kinds to MySQL types.
var Catalog = &dialect.Catalog{
	Dialect: "mysql",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "int NOT NULL AUTO_INCREMENT PRIMARY KEY"},
		core.String:     {Name: "varchar", Limit: 255},
		core.Text:       {Name: "text"},
		core.Integer:    {Name: "int"},
		core.Float:      {Name: "float"},
		core.Decimal:    {Name: "decimal"},
		core.Boolean:    {Name: "tinyint(1)"},
		core.Binary:     {Name: "blob"},
		core.Date:       {Name: "date"},
		core.Time:       {Name: "time"},
		core.DateTime:   {Name: "datetime"},
		core.Timestamp:  {Name: "datetime"},
	},
	Integers: dialect.IntegerWidths{Small: "smallint", Standard: "int", Wide: "bigint"},
	Rules: []dialect.TypeRule{
		dialect.Rule(`^tinyint\(1\)`, core.Boolean),
		dialect.Rule(`^(enum|set)\b`, core.String),
		dialect.Rule(`^year\b`, core.Integer),
		dialect.Rule(`^(tiny|medium|long)blob`, core.Binary),
	},
}
