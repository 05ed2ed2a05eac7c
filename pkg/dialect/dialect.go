// Package dialect defines the capability contracts every SQL dialect implements
// and the table-driven building blocks shared by the concrete dialects.
//
// A Dialect is selected once per connection and held as a single bound strategy.
// Concrete implementations live in pkg/dialects/*/ and register themselves in init().
// Everything in this package is pure: no method performs I/O. Queries that need a
// backend round-trip (identity, sequence discovery) are returned as SQL text for the
// caller to execute.
package dialect

import (
	"time"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// TypeCatalog maps logical column kinds to native SQL types and back.
type TypeCatalog interface {
	// NativeType returns the catalog entry for kind.
	NativeType(kind core.LogicalType) (core.ColumnTypeSpec, error)
	// TypeToSQL renders the column type used in DDL for kind with the given options.
	TypeToSQL(kind core.LogicalType, opts core.ColumnOptions) (string, error)
	// SimplifiedType maps a native type string back to a logical kind.
	SimplifiedType(sqlType string) core.LogicalType
	// ExtractLimit reads the declared limit of a native type string; 0 means none.
	ExtractLimit(sqlType string) int
}

// Caster converts raw driver values into normalized values. It never fails:
// malformed input yields core.Null().
type Caster interface {
	Cast(raw core.RawValue, kind core.LogicalType) core.Value
}

// Quoter renders normalized values and identifiers as SQL text.
type Quoter interface {
	// Quote renders v as a literal for a column of the given kind (core.Unspecified
	// when unknown). It never fails.
	Quote(v core.Value, kind core.LogicalType) string
	QuoteString(s string) string
	// QuoteIdentifier quotes name only when the dialect requires it.
	// Dotted names are quoted part by part.
	QuoteIdentifier(name string) string
}

// DDLSynthesizer builds schema-mutation plans.
type DDLSynthesizer interface {
	AddColumn(table, column string, kind core.LogicalType, opts core.ColumnOptions) (Plan, error)
	ChangeColumn(table, column string, kind core.LogicalType, opts core.ColumnOptions) (Plan, error)
	ChangeColumnDefault(table, column string, def core.Value) (Plan, error)
	RenameColumn(table, from, to string) (Plan, error)
	RenameTable(from, to string) (Plan, error)
	RemoveColumn(table, column string) (Plan, error)
	AddIndex(table string, columns []string, opts IndexOptions) (Plan, error)
	RemoveIndex(table string, ref IndexRef) (Plan, error)
	IndexName(table string, columns []string) string
}

// IdentityKind says how a dialect reports generated primary keys.
type IdentityKind int

const (
	// IdentityNone means the dialect cannot report generated keys.
	IdentityNone IdentityKind = iota
	// IdentityDirect means a single query returns the last generated key.
	IdentityDirect
	// IdentitySequence means keys come from a sequence that must be discovered.
	IdentitySequence
)

// String returns the name of the identity strategy.
func (k IdentityKind) String() string {
	switch k {
	case IdentityDirect:
		return "direct"
	case IdentitySequence:
		return "sequence"
	default:
		return "none"
	}
}

// SequenceLookup is one step of sequence discovery: a catalog query and the
// function that reads a SequenceRef from its result.
type SequenceLookup struct {
	Name    string
	SQL     string
	Extract func(rs *core.RowSet) (core.SequenceRef, bool)
}

// IdentityResolver supplies the queries used to determine a generated key.
type IdentityResolver interface {
	IdentityKind() IdentityKind
	// IdentityQuery returns the direct "last identity" query for table.
	IdentityQuery(table string) string
	// SequenceLookups returns discovery steps in preference order.
	SequenceLookups(table, primaryKey string) []SequenceLookup
	// CurrentValueQuery returns the query reading the current value of seq.
	CurrentValueQuery(seq core.SequenceRef) string
}

// PaginationRewriter applies limit/offset syntax to a SELECT statement.
type PaginationRewriter interface {
	// ApplyLimitOffset rewrites sql; limit <= 0 and offset <= 0 mean absent.
	ApplyLimitOffset(sql string, limit, offset int) string
}

// Introspector interprets introspection results.
type Introspector interface {
	// IsSystemTable reports whether t is backend-internal and must be hidden.
	IsSystemTable(t core.TableInfo) bool
	// ColumnDefault interprets a stored default expression.
	ColumnDefault(expr string) core.RawValue
}

// Dialect is the full capability set bound to a connection.
type Dialect interface {
	Name() string
	Config() *core.DialectConfig
	TypeCatalog
	Caster
	Quoter
	DDLSynthesizer
	IdentityResolver
	PaginationRewriter
	Introspector
}

// Options are supplied when a dialect is constructed for a connection.
type Options struct {
	// Location interprets zone-less date/time values. Nil means UTC.
	Location *time.Location
	// TempColumn names the temporary column used by copy-based alter fallbacks.
	// Nil means a random name.
	TempColumn func(column string) string
}

// Loc returns the configured location, defaulting to UTC.
func (o Options) Loc() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}
