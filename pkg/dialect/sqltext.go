package dialect

import (
	"strings"
	"unicode"
)

// HeadToken returns the first word of a statement in lower case, skipping
// leading blanks, parentheses and comments.
func HeadToken(sql string) string {
	s := strings.TrimLeftFunc(sql, func(r rune) bool { return unicode.IsSpace(r) || r == '(' })
	for {
		switch {
		case strings.HasPrefix(s, "--"):
			if i := strings.IndexByte(s, '\n'); i >= 0 {
				s = s[i+1:]
			} else {
				return ""
			}
		case strings.HasPrefix(s, "/*"):
			if i := strings.Index(s, "*/"); i >= 0 {
				s = s[i+2:]
			} else {
				return ""
			}
		default:
			end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
			if end < 0 {
				end = len(s)
			}
			return strings.ToLower(s[:end])
		}
		s = strings.TrimLeftFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '(' })
	}
}

// InsertTable returns the target table of an INSERT statement: its third word.
func InsertTable(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) < 3 {
		return ""
	}
	table := fields[2]
	if i := strings.IndexByte(table, '('); i > 0 {
		table = table[:i]
	}
	return table
}

// SplitSelect splits a statement at its leading SELECT keyword, returning the
// remainder after it. ok is false when sql does not start with SELECT.
func SplitSelect(sql string) (rest string, ok bool) {
	trimmed := strings.TrimLeftFunc(sql, unicode.IsSpace)
	if len(trimmed) < 6 || !strings.EqualFold(trimmed[:6], "select") {
		return sql, false
	}
	if len(trimmed) > 6 && !unicode.IsSpace(rune(trimmed[6])) {
		return sql, false
	}
	return strings.TrimLeftFunc(trimmed[6:], unicode.IsSpace), true
}

var orderByPattern = strings.NewReplacer("\n", " ", "\t", " ", "\r", " ")

// HasOrderBy reports whether the statement has an ORDER BY at its top level.
// Parenthesised subqueries are skipped.
func HasOrderBy(sql string) bool {
	flat := strings.ToLower(orderByPattern.Replace(sql))
	depth := 0
	for i := 0; i < len(flat); i++ {
		switch flat[i] {
		case '(':
			depth++
		case ')':
			depth--
		case 'o':
			if depth == 0 && strings.HasPrefix(flat[i:], "order ") && (i == 0 || flat[i-1] == ' ') {
				if strings.HasPrefix(strings.TrimLeft(flat[i+6:], " "), "by ") {
					return true
				}
			}
		}
	}
	return false
}
