package ansi

import (
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// IsSystemTable hides backend-internal tables from listings.
func (b *Base) IsSystemTable(t core.TableInfo) bool {
	if b.rules.SystemTable != nil {
		return b.rules.SystemTable(t)
	}
	return strings.EqualFold(t.Schema, "information_schema") || strings.HasPrefix(strings.ToUpper(t.Type), "SYSTEM")
}

// ColumnDefault interprets a stored default expression.
func (b *Base) ColumnDefault(expr string) core.RawValue {
	if b.rules.ColumnDefault != nil {
		return b.rules.ColumnDefault(expr)
	}
	return GenericColumnDefault(expr)
}

// GenericColumnDefault strips one layer of parentheses and one layer of quotes.
// NULL and an empty expression mean no default.
func GenericColumnDefault(expr string) core.RawValue {
	s := strings.TrimSpace(expr)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || strings.EqualFold(s, "null") {
		return core.NullRaw()
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return core.Raw(strings.ReplaceAll(s[1:len(s)-1], "''", "'"))
	}
	return core.Raw(s)
}
