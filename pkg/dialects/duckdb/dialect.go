package duckdb

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("duckdb", func(opts dialect.Options) dialect.Dialect { return New(opts) })
}

// Dialect is the DuckDB dialect.
type Dialect struct {
	*ansi.Base
}

// New returns a DuckDB dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	d := &Dialect{}
	rules := ansi.Rules{
		Config:  Config,
		Catalog: Catalog,
		Quoting: ansi.Quoting{
			True:   "true",
			False:  "false",
			Binary: blobLiteral,
		},
		DDL: ansi.DDL{
			AlterType: func(table, column, sqlType string, notNull bool) []string {
				stmts := []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s", table, column, sqlType)}
				if notNull {
					stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", table, column))
				}
				return stmts
			},
		},
		Identity: ansi.Identity{
			Kind:    dialect.IdentitySequence,
			Lookups: d.sequenceLookups,
		},
		UnboundedLimit: "ALL",
		SystemTable: func(t core.TableInfo) bool {
			schema := strings.ToLower(t.Schema)
			return schema == "information_schema" || schema == "pg_catalog" || t.Type == "SYSTEM TABLE"
		},
	}
	d.Base = ansi.NewBase(rules, opts)
	return d
}

// blobLiteral renders bytes as '\xHH\xHH'::BLOB.
func blobLiteral(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 9)
	sb.WriteByte('\'')
	for _, c := range b {
		sb.WriteString(`\x`)
		sb.WriteString(strings.ToUpper(dialect.HexLiteral([]byte{c})))
	}
	sb.WriteString("'::BLOB")
	return sb.String()
}

// sequenceLookups reads the primary key default from duckdb_columns().
func (d *Dialect) sequenceLookups(table, _ string) []dialect.SequenceLookup {
	ref := core.ParseSequenceRef(table)
	where := "c.table_name = " + d.QuoteString(ref.Name)
	if ref.Schema != "" {
		where += " AND c.schema_name = " + d.QuoteString(ref.Schema)
	}
	return []dialect.SequenceLookup{{
		Name: "pk default",
		SQL: `SELECT c.column_default AS default_expr, c.schema_name AS table_schema
FROM duckdb_columns() c
JOIN duckdb_constraints() k
  ON k.database_name = c.database_name
 AND k.schema_name = c.schema_name
 AND k.table_name = c.table_name
 AND k.constraint_type = 'PRIMARY KEY'
 AND list_contains(k.constraint_column_names, c.column_name)
WHERE ` + where + `
  AND c.column_default ILIKE 'nextval%'
LIMIT 1`,
		Extract: dialect.SequenceFromDefault,
	}}
}
