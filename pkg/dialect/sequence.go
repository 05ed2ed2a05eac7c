package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// ParseSequenceDefault extracts the sequence named by a column default expression.
//
// Grammar (keywords case-insensitive, blanks allowed between tokens):
//
//	expr    = "nextval" "(" arg ")"
//	arg     = literal [ cast ] | "(" literal [ cast ] ")" cast
//	cast    = "::" word
//	literal = "'" [ part "." ] part "'"
//	part    = word | '"' chars '"'
//
// Unquoted parts fold to lower case; quoted parts keep their case. An unqualified
// name takes schema as its schema.
func ParseSequenceDefault(expr, schema string) (core.SequenceRef, error) {
	p := &seqParser{src: expr}
	ref, err := p.parse()
	if err != nil {
		return core.SequenceRef{}, fmt.Errorf("parse sequence default %q: %w", expr, err)
	}
	if ref.Schema == "" {
		ref.Schema = schema
	}
	return ref, nil
}

type seqParser struct {
	src string
	pos int
}

func (p *seqParser) parse() (core.SequenceRef, error) {
	p.skipSpace()
	if !p.keyword("nextval") {
		return core.SequenceRef{}, fmt.Errorf("expected nextval at offset %d", p.pos)
	}
	if err := p.expect('('); err != nil {
		return core.SequenceRef{}, err
	}

	nested := p.accept('(')
	lit, err := p.literal()
	if err != nil {
		return core.SequenceRef{}, err
	}
	p.cast()
	if nested {
		if err := p.expect(')'); err != nil {
			return core.SequenceRef{}, err
		}
		if !p.cast() {
			return core.SequenceRef{}, fmt.Errorf("expected cast after nested argument at offset %d", p.pos)
		}
	}
	if err := p.expect(')'); err != nil {
		return core.SequenceRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return core.SequenceRef{}, fmt.Errorf("unexpected trailing input at offset %d", p.pos)
	}
	return splitSequenceName(lit)
}

func (p *seqParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *seqParser) keyword(kw string) bool {
	if len(p.src)-p.pos < len(kw) || !strings.EqualFold(p.src[p.pos:p.pos+len(kw)], kw) {
		return false
	}
	p.pos += len(kw)
	return true
}

func (p *seqParser) accept(ch byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ch {
		p.pos++
		return true
	}
	return false
}

func (p *seqParser) expect(ch byte) error {
	if !p.accept(ch) {
		return fmt.Errorf("expected %q at offset %d", ch, p.pos)
	}
	return nil
}

// literal reads a single-quoted string, undoubling embedded quotes.
func (p *seqParser) literal() (string, error) {
	if !p.accept('\'') {
		return "", fmt.Errorf("expected string literal at offset %d", p.pos)
	}
	var b strings.Builder
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		p.pos++
		if ch != '\'' {
			b.WriteByte(ch)
			continue
		}
		if p.pos < len(p.src) && p.src[p.pos] == '\'' {
			b.WriteByte('\'')
			p.pos++
			continue
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("unterminated string literal")
}

// cast consumes an optional ::word suffix.
func (p *seqParser) cast() bool {
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "::") {
		return false
	}
	p.pos += 2
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isWordByte(p.src[p.pos]) {
		p.pos++
	}
	return p.pos > start
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

func splitSequenceName(lit string) (core.SequenceRef, error) {
	parts := SplitQualified(strings.TrimSpace(lit), `"`, `"`)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case len(part) >= 2 && part[0] == '"' && part[len(part)-1] == '"':
			names = append(names, strings.ReplaceAll(part[1:len(part)-1], `""`, `"`))
		case part == "":
			return core.SequenceRef{}, fmt.Errorf("empty name part in %q", lit)
		default:
			names = append(names, strings.ToLower(part))
		}
	}
	switch len(names) {
	case 1:
		return core.SequenceRef{Name: names[0]}, nil
	case 2:
		return core.SequenceRef{Schema: names[0], Name: names[1]}, nil
	default:
		return core.SequenceRef{}, fmt.Errorf("too many name parts in %q", lit)
	}
}

// SequenceFromColumns reads seq_schema/seq_name from the first row of a catalog lookup.
func SequenceFromColumns(rs *core.RowSet) (core.SequenceRef, bool) {
	name, ok := rs.Get(0, "seq_name")
	if !ok || !name.Valid() || name.String() == "" {
		return core.SequenceRef{}, false
	}
	schema, _ := rs.Get(0, "seq_schema")
	return core.SequenceRef{Schema: schema.String(), Name: name.String()}, true
}

// SequenceFromDefault parses default_expr from the first row of a lookup,
// taking table_schema as the schema for unqualified names.
func SequenceFromDefault(rs *core.RowSet) (core.SequenceRef, bool) {
	expr, ok := rs.Get(0, "default_expr")
	if !ok || !expr.Valid() {
		return core.SequenceRef{}, false
	}
	schema, _ := rs.Get(0, "table_schema")
	ref, err := ParseSequenceDefault(expr.String(), schema.String())
	if err != nil {
		return core.SequenceRef{}, false
	}
	return ref, true
}
