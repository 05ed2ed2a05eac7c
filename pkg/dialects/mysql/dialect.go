package mysql

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("mysql", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "mariadb")
}

// MaxLimit is the unbounded limit MySQL documents for offset-only queries.
const MaxLimit = "18446744073709551615"

var systemSchemas = map[string]bool{
	"information_schema": true,
	"mysql":              true,
	"performance_schema": true,
	"sys":                true,
}

// Rules are the MySQL departures from the generic dialect.
var Rules = ansi.Rules{
	Config:  Config,
	Catalog: Catalog,
	Quoting: ansi.Quoting{
		True:            "1",
		False:           "0",
		EscapeBackslash: true,
		Binary: func(b []byte) string {
			return "x'" + dialect.HexLiteral(b) + "'"
		},
	},
	DDL: ansi.DDL{
		AlterType: func(table, column, sqlType string, notNull bool) []string {
			if notNull {
				sqlType += " NOT NULL"
			}
			return []string{fmt.Sprintf("ALTER TABLE %s MODIFY %s %s", table, column, sqlType)}
		},
		RenameTable: func(from, to string) string {
			return fmt.Sprintf("RENAME TABLE %s TO %s", from, to)
		},
		DropIndex: func(table, index string) string {
			return fmt.Sprintf("DROP INDEX %s ON %s", index, table)
		},
	},
	Identity: ansi.Identity{
		Kind: dialect.IdentityDirect,
		Query: func(string) string {
			return "SELECT LAST_INSERT_ID()"
		},
	},
	UnboundedLimit: MaxLimit,
	SystemTable: func(t core.TableInfo) bool {
		return systemSchemas[strings.ToLower(t.Schema)]
	},
}

// Dialect is the MySQL dialect.
type Dialect struct {
	*ansi.Base
}

// New returns a MySQL dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	return &Dialect{Base: ansi.NewBase(Rules, opts)}
}
