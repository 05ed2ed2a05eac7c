package hsqldb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("hsqldb", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "hsql")
}

// Rules are the HSQLDB departures from the generic dialect.
var Rules = ansi.Rules{
	Config:  Config,
	Catalog: Catalog,
	Quoting: ansi.Quoting{
		True:  "1",
		False: "0",
		Binary: func(b []byte) string {
			return "'" + dialect.HexLiteral(b) + "'"
		},
	},
	Binary: dialect.HexPairBinary,
	DDL: ansi.DDL{
		AlterType: func(table, column, sqlType string, notNull bool) []string {
			stmts := []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, sqlType)}
			if notNull {
				stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", table, column))
			}
			return stmts
		},
		RenameColumn: func(table, from, to string) string {
			return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s RENAME TO %s", table, from, to)
		},
	},
	Identity: ansi.Identity{
		Kind: dialect.IdentityDirect,
		Query: func(table string) string {
			return "SELECT IDENTITY() FROM " + table
		},
	},
	SystemTable: func(t core.TableInfo) bool {
		return strings.EqualFold(t.Type, "SYSTEM TABLE") ||
			strings.EqualFold(t.Schema, "INFORMATION_SCHEMA") ||
			strings.EqualFold(t.Schema, "SYSTEM_LOBS")
	},
}

// Dialect is the HSQLDB dialect.
type Dialect struct {
	*ansi.Base
}

// New returns an HSQLDB dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	return &Dialect{Base: ansi.NewBase(Rules, opts)}
}

// ApplyLimitOffset uses HSQLDB's "SELECT LIMIT <offset> <limit>" form, where a
// limit of 0 means unbounded.
func (d *Dialect) ApplyLimitOffset(sql string, limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return sql
	}
	rest, ok := dialect.SplitSelect(sql)
	if !ok {
		return d.Base.ApplyLimitOffset(sql, limit, offset)
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return "select limit " + strconv.Itoa(offset) + " " + strconv.Itoa(limit) + " " + rest
}
