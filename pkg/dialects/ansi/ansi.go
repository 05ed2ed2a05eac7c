// Package ansi provides the generic dialect rules every concrete dialect builds on.
//
// Base implements dialect.Dialect from a Rules value: pure data plus a few hooks
// for statement forms that differ between backends. Concrete dialects construct a
// Base with their own Rules and override whole methods only where the generic
// shape does not fit (pagination syntax, for example).
package ansi

import (
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

func init() {
	dialect.Register("ansi", func(opts dialect.Options) dialect.Dialect { return New(opts) }, "generic")
}

// Quoting configures literal rendering.
type Quoting struct {
	True, False     string
	EscapeBackslash bool
	// Binary renders a byte sequence as a literal. Nil means X'<hex>'.
	Binary func(b []byte) string
	// BarePrimaryKey renders integer-looking primary key strings without quotes.
	BarePrimaryKey bool
}

// DDL holds statement hooks. AlterType, RenameColumn, RenameTable and DropIndex
// receive quoted identifiers; Default, DefaultClause and DropColumn receive raw
// names so they can derive constraint names from them.
type DDL struct {
	// AddColumn is the clause introducing a new column. Empty means "ADD COLUMN".
	AddColumn string
	// AlterType returns the native alter-type statements. Nil means SET DATA TYPE.
	AlterType func(table, column, sqlType string, notNull bool) []string
	// CopyFallback replaces native alter-type with add/copy/drop/rename.
	CopyFallback bool
	// Default returns the statements changing a default; literal "" means drop it.
	Default func(table, column, literal string) []string
	// NoDefaultChange makes ChangeColumnDefault fail explicitly.
	NoDefaultChange bool
	// DefaultClause renders the DEFAULT clause of an added column.
	DefaultClause func(table, column, literal string) string
	DropColumn    func(table, column string) []string
	RenameColumn  func(table, from, to string) string
	RenameTable   func(from, to string) string
	DropIndex     func(table, index string) string
}

// Identity configures generated-key resolution.
type Identity struct {
	Kind    dialect.IdentityKind
	Query   func(table string) string
	Lookups func(table, primaryKey string) []dialect.SequenceLookup
}

// Rules fully describe a dialect built on Base.
type Rules struct {
	Config   *core.DialectConfig
	Catalog  *dialect.Catalog
	Quoting  Quoting
	Binary   dialect.BinaryDecoder
	DDL      DDL
	Identity Identity
	// UnboundedLimit is emitted as the limit when only an offset is requested.
	// Empty means OFFSET may stand alone.
	UnboundedLimit string
	SystemTable    func(t core.TableInfo) bool
	ColumnDefault  func(expr string) core.RawValue
}

// Base implements dialect.Dialect with generic rules.
type Base struct {
	rules  Rules
	opts   dialect.Options
	ids    *dialect.Identifiers
	caster dialect.BaseCaster
}

var _ dialect.Dialect = (*Base)(nil)

// NewBase builds a Base from rules and per-connection options.
func NewBase(rules Rules, opts dialect.Options) *Base {
	if rules.Quoting.True == "" {
		rules.Quoting.True, rules.Quoting.False = "TRUE", "FALSE"
	}
	return &Base{
		rules:  rules,
		opts:   opts,
		ids:    dialect.NewIdentifiers(rules.Config.Identifiers, rules.Config.Keywords...),
		caster: dialect.BaseCaster{Location: opts.Loc(), Binary: rules.Binary},
	}
}

// Name returns the dialect identifier.
func (b *Base) Name() string { return b.rules.Config.Name }

// Config returns the static dialect configuration.
func (b *Base) Config() *core.DialectConfig { return b.rules.Config }

// Options returns the per-connection options the dialect was built with.
func (b *Base) Options() dialect.Options { return b.opts }

// Validate checks the type catalog is complete.
func (b *Base) Validate() error { return b.rules.Catalog.Validate() }

// NativeType returns the catalog entry for kind.
func (b *Base) NativeType(kind core.LogicalType) (core.ColumnTypeSpec, error) {
	return b.rules.Catalog.NativeType(kind)
}

// TypeToSQL renders the DDL column type for kind.
func (b *Base) TypeToSQL(kind core.LogicalType, opts core.ColumnOptions) (string, error) {
	return b.rules.Catalog.TypeToSQL(kind, opts)
}

// SimplifiedType maps a native type name to a logical kind.
func (b *Base) SimplifiedType(sqlType string) core.LogicalType {
	return b.rules.Catalog.SimplifiedType(sqlType)
}

// ExtractLimit reads the declared limit of a native type.
func (b *Base) ExtractLimit(sqlType string) int { return b.rules.Catalog.ExtractLimit(sqlType) }

// Cast converts a raw driver value.
func (b *Base) Cast(raw core.RawValue, kind core.LogicalType) core.Value {
	return b.caster.Cast(raw, kind)
}

// Generic is the ANSI configuration.
var Generic = &core.DialectConfig{
	Name:          "ansi",
	DefaultSchema: "",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	Keywords: ReservedWords,
}

// GenericCatalog maps every logical kind to an SQL:2003 type.
var GenericCatalog = &dialect.Catalog{
	Dialect: "ansi",
	Types: map[core.LogicalType]core.ColumnTypeSpec{
		core.PrimaryKey: {Name: "INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"},
		core.String:     {Name: "VARCHAR", Limit: 255},
		core.Text:       {Name: "CLOB"},
		core.Integer:    {Name: "INTEGER"},
		core.Float:      {Name: "DOUBLE PRECISION"},
		core.Decimal:    {Name: "DECIMAL"},
		core.Boolean:    {Name: "BOOLEAN"},
		core.Binary:     {Name: "BLOB"},
		core.Date:       {Name: "DATE"},
		core.Time:       {Name: "TIME"},
		core.DateTime:   {Name: "TIMESTAMP"},
		core.Timestamp:  {Name: "TIMESTAMP"},
	},
	Integers: dialect.IntegerWidths{Small: "SMALLINT", Standard: "INTEGER", Wide: "BIGINT"},
}

// New returns the generic dialect. It cannot report generated keys.
func New(opts dialect.Options) *Base {
	return NewBase(Rules{
		Config:  Generic,
		Catalog: GenericCatalog,
	}, opts)
}

// ReservedWords are SQL:2003 reserved words that commonly collide with column names.
var ReservedWords = []string{
	"all", "alter", "and", "any", "as", "asc", "between", "by", "case", "cast",
	"check", "column", "constraint", "create", "cross", "current_date",
	"current_time", "current_timestamp", "current_user", "default", "delete",
	"desc", "distinct", "drop", "else", "end", "except", "exists", "false",
	"fetch", "for", "foreign", "from", "full", "grant", "group", "having", "in",
	"inner", "insert", "intersect", "into", "is", "join", "left", "like",
	"limit", "natural", "not", "null", "offset", "on", "or", "order", "outer",
	"primary", "references", "right", "select", "session_user", "set", "some",
	"table", "then", "to", "true", "union", "unique", "update", "user", "using",
	"values", "when", "where", "with",
}
