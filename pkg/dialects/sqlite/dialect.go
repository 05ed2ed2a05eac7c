package sqlite

import (
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	"github.com/leapstack-labs/leaprecord/pkg/dialects/ansi"
)

func init() {
	dialect.Register("sqlite", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "sqlite3")
}

// Rules are the SQLite departures from the generic dialect. SQLite cannot alter
// a column type, so ChangeColumn rebuilds the column through a temporary copy.
var Rules = ansi.Rules{
	Config:  Config,
	Catalog: Catalog,
	Quoting: ansi.Quoting{True: "1", False: "0"},
	DDL: ansi.DDL{
		CopyFallback:    true,
		NoDefaultChange: true,
	},
	Identity: ansi.Identity{
		Kind: dialect.IdentityDirect,
		Query: func(string) string {
			return "SELECT last_insert_rowid()"
		},
	},
	UnboundedLimit: "-1",
	SystemTable: func(t core.TableInfo) bool {
		return strings.HasPrefix(strings.ToLower(t.Name), "sqlite_")
	},
	ColumnDefault: ColumnDefault,
}

// Dialect is the SQLite dialect.
type Dialect struct {
	*ansi.Base
}

// New returns an SQLite dialect bound to opts.
func New(opts dialect.Options) *Dialect {
	return &Dialect{Base: ansi.NewBase(Rules, opts)}
}

// ColumnDefault reads a dflt_value from PRAGMA table_info. Expression defaults
// such as CURRENT_TIMESTAMP have no literal value.
func ColumnDefault(expr string) core.RawValue {
	switch strings.ToUpper(strings.TrimSpace(expr)) {
	case "CURRENT_TIMESTAMP", "CURRENT_DATE", "CURRENT_TIME":
		return core.NullRaw()
	}
	return ansi.GenericColumnDefault(expr)
}
