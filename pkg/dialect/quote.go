package dialect

import (
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

var simpleIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteStringLiteral wraps s in single quotes, doubling embedded quotes.
// With escapeBackslash, backslashes are doubled as well.
func QuoteStringLiteral(s string, escapeBackslash bool) string {
	if escapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Identifiers quotes identifiers according to an IdentifierConfig.
type Identifiers struct {
	Config   core.IdentifierConfig
	reserved map[string]struct{}
}

// NewIdentifiers builds an identifier quoter with the given reserved words.
func NewIdentifiers(cfg core.IdentifierConfig, reserved ...string) *Identifiers {
	m := make(map[string]struct{}, len(reserved))
	for _, w := range reserved {
		m[strings.ToLower(w)] = struct{}{}
	}
	return &Identifiers{Config: cfg, reserved: m}
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (q *Identifiers) IsReservedWord(word string) bool {
	_, ok := q.reserved[strings.ToLower(word)]
	return ok
}

// Quote always quotes name as a single identifier part.
func (q *Identifiers) Quote(name string) string {
	escaped := strings.ReplaceAll(name, q.Config.QuoteEnd, q.Config.Escape)
	return q.Config.Quote + escaped + q.Config.QuoteEnd
}

// NeedsQuoting reports whether a single identifier part must be quoted.
// Under lowercase normalization, names with upper-case letters are quoted so
// their case survives. Under uppercase normalization, mixed-case names are
// quoted; single-case names fold to the same identifier either way.
func (q *Identifiers) NeedsQuoting(part string) bool {
	if !simpleIdentifier.MatchString(part) || q.IsReservedWord(part) {
		return true
	}
	switch q.Config.Normalization {
	case core.NormLowercase:
		return strings.ToLower(part) != part
	case core.NormUppercase:
		return strings.ToLower(part) != part && strings.ToUpper(part) != part
	default:
		return false
	}
}

// QuoteIfNeeded quotes each dotted part of name that needs quoting.
// Parts already wrapped in the dialect's quote characters are kept as they are.
func (q *Identifiers) QuoteIfNeeded(name string) string {
	parts := SplitQualified(name, q.Config.Quote, q.Config.QuoteEnd)
	for i, p := range parts {
		if strings.HasPrefix(p, q.Config.Quote) && strings.HasSuffix(p, q.Config.QuoteEnd) && len(p) > 1 {
			continue
		}
		if q.NeedsQuoting(p) {
			parts[i] = q.Quote(p)
		}
	}
	return strings.Join(parts, ".")
}

// SplitQualified splits a dotted name, keeping dots inside quoted parts.
func SplitQualified(name, open, closing string) []string {
	var (
		parts   []string
		current strings.Builder
		quoted  bool
	)
	for i := 0; i < len(name); i++ {
		ch := name[i : i+1]
		switch {
		case !quoted && ch == open:
			quoted = true
		case quoted && ch == closing:
			quoted = false
		case !quoted && ch == ".":
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteString(ch)
	}
	return append(parts, current.String())
}

// UnqualifiedName returns the last dotted part of name.
func UnqualifiedName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// HexLiteral renders b as lower-case hex pairs.
func HexLiteral(b []byte) string { return hex.EncodeToString(b) }
