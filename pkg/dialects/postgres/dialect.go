package postgres

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("postgres", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "postgresql", "pg")
}

// Dialect is the PostgreSQL dialect.
type Dialect struct {
	*ansi.Base
}

// New returns a PostgreSQL dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	d := &Dialect{}
	rules := ansi.Rules{
		Config:  Config,
		Catalog: Catalog,
		Quoting: ansi.Quoting{
			True:  "'t'",
			False: "'f'",
			Binary: func(b []byte) string {
				return `'\x` + dialect.HexLiteral(b) + `'`
			},
			BarePrimaryKey: true,
		},
		Binary: dialect.EscapedHexBinary,
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
			return schema == "pg_catalog" || schema == "information_schema" || strings.HasPrefix(schema, "pg_toast")
		},
		ColumnDefault: ColumnDefault,
	}
	d.Base = ansi.NewBase(rules, opts)
	return d
}

// sequenceLookups returns the catalog lookup first, then the default-expression fallback.
func (d *Dialect) sequenceLookups(table, _ string) []dialect.SequenceLookup {
	regclass := d.QuoteString(d.QuoteIdentifier(table)) + "::regclass"
	return []dialect.SequenceLookup{
		{
			Name: "pk and serial sequence",
			SQL: `SELECT seq_ns.nspname AS seq_schema, seq.relname AS seq_name
FROM pg_class seq
JOIN pg_namespace seq_ns ON seq_ns.oid = seq.relnamespace
JOIN pg_depend dep ON dep.objid = seq.oid
JOIN pg_attribute attr ON attr.attrelid = dep.refobjid AND attr.attnum = dep.refobjsubid
JOIN pg_constraint cons ON cons.conrelid = attr.attrelid AND cons.conkey[1] = attr.attnum
WHERE seq.relkind = 'S'
  AND cons.contype = 'p'
  AND dep.refobjid = ` + regclass + `
LIMIT 1`,
			Extract: dialect.SequenceFromColumns,
		},
		{
			Name: "pk and custom sequence",
			SQL: `SELECT pg_get_expr(def.adbin, def.adrelid) AS default_expr, ns.nspname AS table_schema
FROM pg_class t
JOIN pg_namespace ns ON ns.oid = t.relnamespace
JOIN pg_attribute attr ON attr.attrelid = t.oid
JOIN pg_attrdef def ON def.adrelid = attr.attrelid AND def.adnum = attr.attnum
JOIN pg_constraint cons ON cons.conrelid = def.adrelid AND cons.conkey[1] = def.adnum
WHERE t.oid = ` + regclass + `
  AND cons.contype = 'p'
  AND pg_get_expr(def.adbin, def.adrelid) ~* 'nextval'
LIMIT 1`,
			Extract: dialect.SequenceFromDefault,
		},
	}
}

var (
	quotedDefault = regexp.MustCompile(`^'(.*)'::(bpchar|text|character varying|bytea)$`)
	numberDefault = regexp.MustCompile(`^\(?'?(-?[0-9]+(?:\.[0-9]*)?)'?\)?(?:::[\w ]+)?$`)
	dateDefault   = regexp.MustCompile(`^'(.+)'::(date|timestamp)`)
	boolDefault   = regexp.MustCompile(`(?i)^(true|false)$`)
)

// ColumnDefault interprets a PostgreSQL default expression. Function calls and
// other expressions have no static value and yield NULL.
func ColumnDefault(expr string) core.RawValue {
	s := strings.TrimSpace(expr)
	if m := boolDefault.FindStringSubmatch(s); m != nil {
		return core.Raw(strings.ToLower(m[1])[:1])
	}
	if m := quotedDefault.FindStringSubmatch(s); m != nil {
		return core.Raw(strings.ReplaceAll(m[1], "''", "'"))
	}
	if m := numberDefault.FindStringSubmatch(s); m != nil {
		return core.Raw(m[1])
	}
	if m := dateDefault.FindStringSubmatch(s); m != nil {
		return core.Raw(m[1])
	}
	return core.NullRaw()
}
