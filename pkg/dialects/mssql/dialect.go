package mssql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("mssql", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "sqlserver")
}

// Dialect is the SQL Server dialect.
type Dialect struct {
	*ansi.Base
}

// New returns a SQL Server dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	d := &Dialect{}
	rules := ansi.Rules{
		Config:  Config,
		Catalog: Catalog,
		Quoting: ansi.Quoting{
			True:  "1",
			False: "0",
			Binary: func(b []byte) string {
				return "0x" + dialect.HexLiteral(b)
			},
			BarePrimaryKey: true,
		},
		DDL: ansi.DDL{
			AddColumn: "ADD",
			AlterType: func(table, column, sqlType string, notNull bool) []string {
				if notNull {
					sqlType += " NOT NULL"
				}
				return []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, sqlType)}
			},
			Default:       d.defaultStatements,
			DefaultClause: d.defaultClause,
			DropColumn:    d.dropColumn,
			RenameColumn: func(table, from, to string) string {
				return fmt.Sprintf("EXEC sp_rename %s, %s, 'COLUMN'",
					dialect.QuoteStringLiteral(table+"."+from, false), dialect.QuoteStringLiteral(unbracket(to), false))
			},
			RenameTable: func(from, to string) string {
				return fmt.Sprintf("EXEC sp_rename %s, %s",
					dialect.QuoteStringLiteral(from, false), dialect.QuoteStringLiteral(unbracket(to), false))
			},
			DropIndex: func(table, index string) string {
				return fmt.Sprintf("DROP INDEX %s ON %s", index, table)
			},
		},
		Identity: ansi.Identity{
			Kind: dialect.IdentityDirect,
			Query: func(table string) string {
				return "SELECT IDENT_CURRENT(" + dialect.QuoteStringLiteral(table, false) + ")"
			},
		},
		SystemTable: func(t core.TableInfo) bool {
			schema := strings.ToLower(t.Schema)
			return schema == "sys" || schema == "information_schema" || strings.EqualFold(t.Type, "SYSTEM TABLE")
		},
		ColumnDefault: ColumnDefault,
	}
	d.Base = ansi.NewBase(rules, opts)
	return d
}

// DefaultConstraintName returns the name of the default constraint owned by a column.
func DefaultConstraintName(table, column string) string {
	return "DF_" + dialect.UnqualifiedName(table) + "_" + column
}

func (d *Dialect) dropDefaultConstraint(table, column string) string {
	name := DefaultConstraintName(table, column)
	return fmt.Sprintf("IF OBJECT_ID(%s, 'D') IS NOT NULL ALTER TABLE %s DROP CONSTRAINT %s",
		dialect.QuoteStringLiteral(name, false), d.QuoteIdentifier(table), d.QuoteIdentifier(name))
}

// defaultStatements replaces the named default constraint; an empty literal only drops it.
func (d *Dialect) defaultStatements(table, column, literal string) []string {
	stmts := []string{d.dropDefaultConstraint(table, column)}
	if literal == "" {
		return stmts
	}
	return append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT %s FOR %s",
		d.QuoteIdentifier(table), d.QuoteIdentifier(DefaultConstraintName(table, column)), literal, d.QuoteIdentifier(column)))
}

func (d *Dialect) defaultClause(table, column, literal string) string {
	return fmt.Sprintf("CONSTRAINT %s DEFAULT %s", d.QuoteIdentifier(DefaultConstraintName(table, column)), literal)
}

func (d *Dialect) dropColumn(table, column string) []string {
	return []string{
		d.dropDefaultConstraint(table, column),
		fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", d.QuoteIdentifier(table), d.QuoteIdentifier(column)),
	}
}

func unbracket(name string) string {
	if len(name) >= 2 && name[0] == '[' && name[len(name)-1] == ']' {
		return strings.ReplaceAll(name[1:len(name)-1], "]]", "]")
	}
	return name
}

var distinctPrefix = regexp.MustCompile(`(?i)^distinct\s+`)

// ApplyLimitOffset uses TOP for a bare limit and OFFSET/FETCH otherwise. OFFSET
// requires an ORDER BY, so a neutral one is added when the query has none.
func (d *Dialect) ApplyLimitOffset(sql string, limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return sql
	}
	if offset <= 0 {
		if rest, ok := dialect.SplitSelect(sql); ok {
			top := "TOP " + strconv.Itoa(limit) + " "
			if m := distinctPrefix.FindString(rest); m != "" {
				return "SELECT DISTINCT " + top + rest[len(m):]
			}
			return "SELECT " + top + rest
		}
	}

	var sb strings.Builder
	sb.WriteString(ansi.TrimStatement(sql))
	if !dialect.HasOrderBy(sql) {
		sb.WriteString(" ORDER BY (SELECT NULL)")
	}
	sb.WriteString(" OFFSET " + strconv.Itoa(max(offset, 0)) + " ROWS")
	if limit > 0 {
		sb.WriteString(" FETCH NEXT " + strconv.Itoa(limit) + " ROWS ONLY")
	}
	return sb.String()
}

// ColumnDefault unwraps SQL Server's parenthesised default definitions such as
// "((0))" or "(N'abc')". Function defaults yield NULL.
func ColumnDefault(expr string) core.RawValue {
	s := strings.TrimSpace(expr)
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "N'") {
		s = s[1:]
	}
	switch {
	case s == "" || strings.EqualFold(s, "null"):
		return core.NullRaw()
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		return core.Raw(strings.ReplaceAll(s[1:len(s)-1], "''", "'"))
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return core.Raw(s)
	}
	return core.NullRaw()
}
