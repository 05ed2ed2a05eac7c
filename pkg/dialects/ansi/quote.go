package ansi

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// Quote renders v as a literal for a column of the given kind.
func (b *Base) Quote(v core.Value, kind core.LogicalType) string {
	switch v.Kind() {
	case core.KindNull:
		return "NULL"
	case core.KindString:
		s, _ := v.Str()
		return b.quoteText(s, kind)
	case core.KindInteger:
		i, _ := v.Int()
		return strconv.FormatInt(i, 10)
	case core.KindFloat:
		f, _ := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return b.QuoteString(v.String())
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case core.KindDecimal:
		d, _ := v.Decimal()
		return d.String()
	case core.KindBoolean:
		if t, _ := v.Bool(); t {
			return b.rules.Quoting.True
		}
		return b.rules.Quoting.False
	case core.KindBytes:
		raw, _ := v.Bytes()
		return b.QuoteBinary(raw)
	default:
		return b.quoteTemporal(v)
	}
}

func (b *Base) quoteText(s string, kind core.LogicalType) string {
	switch kind {
	case core.Binary:
		return b.QuoteBinary([]byte(s))
	case core.PrimaryKey:
		if b.rules.Quoting.BarePrimaryKey && isInteger(s) {
			return strings.TrimSpace(s)
		}
	case core.Integer, core.Float, core.Decimal:
		if isNumber(s) {
			return strings.TrimSpace(s)
		}
	}
	return b.QuoteString(s)
}

func (b *Base) quoteTemporal(v core.Value) string {
	t, _ := v.Time()
	t = t.In(b.opts.Loc())
	switch v.Kind() {
	case core.KindDate:
		return "'" + t.Format("2006-01-02") + "'"
	case core.KindTime:
		return "'" + t.Format("15:04:05.999999") + "'"
	default:
		return "'" + t.Format("2006-01-02 15:04:05.999999") + "'"
	}
}

// QuoteString renders s as a string literal.
func (b *Base) QuoteString(s string) string {
	return dialect.QuoteStringLiteral(s, b.rules.Quoting.EscapeBackslash)
}

// QuoteBinary renders a byte sequence with the dialect's binary literal form.
func (b *Base) QuoteBinary(raw []byte) string {
	if b.rules.Quoting.Binary != nil {
		return b.rules.Quoting.Binary(raw)
	}
	return "X'" + dialect.HexLiteral(raw) + "'"
}

// QuoteIdentifier quotes each dotted part of name that needs it.
func (b *Base) QuoteIdentifier(name string) string { return b.ids.QuoteIfNeeded(name) }

// IsReservedWord reports whether word must be quoted as an identifier.
func (b *Base) IsReservedWord(word string) bool { return b.ids.IsReservedWord(word) }

func isInteger(s string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

// decimalLiteral matches SQL numeric literals: decimal digits, an optional
// fraction and exponent. Hex floats and digit separators are excluded.
var decimalLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

func isNumber(s string) bool {
	return decimalLiteral.MatchString(strings.TrimSpace(s))
}
