package ansi

import (
	"strconv"
	"strings"
	"unicode"
)

// ApplyLimitOffset appends LIMIT/OFFSET. An offset without a limit gets the
// dialect's unbounded limit when it has one.
func (b *Base) ApplyLimitOffset(sql string, limit, offset int) string {
	if limit <= 0 && offset <= 0 {
		return sql
	}
	var sb strings.Builder
	sb.WriteString(TrimStatement(sql))
	switch {
	case limit > 0:
		sb.WriteString(" LIMIT " + strconv.Itoa(limit))
	case b.rules.UnboundedLimit != "":
		sb.WriteString(" LIMIT " + b.rules.UnboundedLimit)
	}
	if offset > 0 {
		sb.WriteString(" OFFSET " + strconv.Itoa(offset))
	}
	return sb.String()
}

// TrimStatement drops trailing blanks and semicolons.
func TrimStatement(sql string) string {
	return strings.TrimRightFunc(sql, func(r rune) bool { return unicode.IsSpace(r) || r == ';' })
}
