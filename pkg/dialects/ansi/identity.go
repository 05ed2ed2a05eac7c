package ansi

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// IdentityKind reports how generated keys are read back.
func (b *Base) IdentityKind() dialect.IdentityKind { return b.rules.Identity.Kind }

// IdentityQuery returns the direct identity query for table, or "".
func (b *Base) IdentityQuery(table string) string {
	if b.rules.Identity.Query == nil {
		return ""
	}
	return b.rules.Identity.Query(b.QuoteIdentifier(table))
}

// SequenceLookups returns the sequence discovery steps for table.
func (b *Base) SequenceLookups(table, primaryKey string) []dialect.SequenceLookup {
	if b.rules.Identity.Lookups == nil {
		return nil
	}
	return b.rules.Identity.Lookups(table, primaryKey)
}

// CurrentValueQuery returns SELECT currval('<seq>').
func (b *Base) CurrentValueQuery(seq core.SequenceRef) string {
	return "SELECT currval(" + b.QuoteString(b.SequenceName(seq)) + ")"
}

// SequenceName renders seq as an identifier, quoting each part when needed.
func (b *Base) SequenceName(seq core.SequenceRef) string {
	name := b.quotePart(seq.Name)
	if seq.Schema == "" {
		return name
	}
	return b.quotePart(seq.Schema) + "." + name
}

func (b *Base) quotePart(part string) string {
	if b.ids.NeedsQuoting(part) {
		return b.ids.Quote(part)
	}
	return part
}

