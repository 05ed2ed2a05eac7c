package dialect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// IntegerWidths are the native integer names chosen by byte-width limit.
type IntegerWidths struct {
	Small    string // limit 1 to 3
	Standard string // limit unset or 4
	Wide     string // limit > 4
}

// For returns the integer type name for a byte-width limit.
// A limit <= 0 is unset.
func (w IntegerWidths) For(limit int) string {
	switch {
	case limit <= 0 || limit == 4:
		return w.Standard
	case limit < 4:
		return w.Small
	default:
		return w.Wide
	}
}

// TypeRule maps native type names matching Pattern to a logical kind.
type TypeRule struct {
	Pattern *regexp.Regexp
	Type    core.LogicalType
}

// Rule compiles a case-insensitive TypeRule.
func Rule(pattern string, kind core.LogicalType) TypeRule {
	return TypeRule{Pattern: regexp.MustCompile(`(?i)` + pattern), Type: kind}
}

// GenericTypeRules recognise the common native type names. Dialect rules run first.
var GenericTypeRules = []TypeRule{
	Rule(`^(tiny|small|medium|big)?int(eger)?\d*\b|^(big|small)?serial`, core.Integer),
	Rule(`^(float|double|real)`, core.Float),
	Rule(`^(decimal|numeric|number)`, core.Decimal),
	Rule(`^(clob|text|longtext|mediumtext|ntext)`, core.Text),
	Rule(`^(blob|binary|varbinary|bytea|image|longvarbinary)`, core.Binary),
	Rule(`^timestamp`, core.Timestamp),
	Rule(`^(datetime|smalldatetime)`, core.DateTime),
	Rule(`^time`, core.Time),
	Rule(`^date`, core.Date),
	Rule(`^(bool|bit)`, core.Boolean),
	Rule(`char|string|uuid`, core.String),
}

var limitPattern = regexp.MustCompile(`\(\s*(\d+)`)

// Catalog is a table-driven TypeCatalog.
type Catalog struct {
	Dialect string
	// Types holds one entry per logical kind. PrimaryKey's Name is the full DDL.
	Types    map[core.LogicalType]core.ColumnTypeSpec
	Integers IntegerWidths
	// Rules are consulted before GenericTypeRules by SimplifiedType.
	Rules []TypeRule
}

// Validate reports every logical kind missing from the catalog.
func (c *Catalog) Validate() error {
	var missing []string
	for _, kind := range core.LogicalTypes() {
		spec, ok := c.Types[kind]
		if !ok || spec.Name == "" {
			missing = append(missing, kind.String())
		}
	}
	if c.Integers.Small == "" || c.Integers.Standard == "" || c.Integers.Wide == "" {
		missing = append(missing, "integer widths")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete type catalog: missing %s: %w", strings.Join(missing, ", "), core.ErrUnmappedType)
	}
	return nil
}

// NativeType returns the catalog entry for kind.
func (c *Catalog) NativeType(kind core.LogicalType) (core.ColumnTypeSpec, error) {
	spec, ok := c.Types[kind]
	if !ok || spec.Name == "" {
		return core.ColumnTypeSpec{}, &core.UnmappedTypeError{Dialect: c.Dialect, Type: kind}
	}
	return spec, nil
}

// TypeToSQL renders the DDL column type for kind.
func (c *Catalog) TypeToSQL(kind core.LogicalType, opts core.ColumnOptions) (string, error) {
	spec, err := c.NativeType(kind)
	if err != nil {
		return "", err
	}

	switch kind {
	case core.PrimaryKey:
		return spec.Name, nil
	case core.Integer:
		return c.Integers.For(opts.Limit), nil
	case core.Decimal:
		precision, scale := spec.Precision, spec.Scale
		if opts.Precision > 0 {
			precision, scale = opts.Precision, opts.Scale
		}
		switch {
		case precision <= 0:
			return spec.Name, nil
		case scale > 0:
			return fmt.Sprintf("%s(%d,%d)", spec.Name, precision, scale), nil
		default:
			return fmt.Sprintf("%s(%d)", spec.Name, precision), nil
		}
	}

	limit := spec.Limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if limit > 0 {
		return fmt.Sprintf("%s(%d)", spec.Name, limit), nil
	}
	return spec.Name, nil
}

// SimplifiedType maps a native type name to a logical kind. Unknown names are String.
func (c *Catalog) SimplifiedType(sqlType string) core.LogicalType {
	t := strings.TrimSpace(sqlType)
	for _, rules := range [][]TypeRule{c.Rules, GenericTypeRules} {
		for _, r := range rules {
			if r.Pattern.MatchString(t) {
				return r.Type
			}
		}
	}
	return core.String
}

// ExtractLimit returns the first parenthesised number of a native type, 0 when absent.
// A declared "(0)" also yields 0, meaning no limit.
func (c *Catalog) ExtractLimit(sqlType string) int {
	m := limitPattern.FindStringSubmatch(sqlType)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
