package dialect

import "strings"

// Schema operation names, used in plans and error reports.
const (
	OpAddColumn           = "add_column"
	OpChangeColumn        = "change_column"
	OpChangeColumnDefault = "change_column_default"
	OpRenameColumn        = "rename_column"
	OpRenameTable         = "rename_table"
	OpRemoveColumn        = "remove_column"
	OpAddIndex            = "add_index"
	OpRemoveIndex         = "remove_index"
)

// Plan is the SQL produced for one schema operation.
// An Atomic plan must run inside a single transaction and roll back fully on failure.
type Plan struct {
	Op         string
	Table      string
	Column     string
	Statements []string
	Atomic     bool
}

// SQL joins the statements for display.
func (p Plan) SQL() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return strings.Join(p.Statements, ";\n") + ";"
}

// Append returns p with more statements. A plan with more than one statement is atomic.
func (p Plan) Append(stmts ...string) Plan {
	p.Statements = append(append([]string(nil), p.Statements...), stmts...)
	if len(p.Statements) > 1 {
		p.Atomic = true
	}
	return p
}

// IndexOptions configure AddIndex.
type IndexOptions struct {
	// Name overrides the canonical index name.
	Name   string
	Unique bool
}

// IndexRef identifies an index to remove, by explicit name or by its columns.
type IndexRef struct {
	Name    string
	Columns []string
}

// CanonicalIndexName returns index_<table>_on_<col>[_and_<col>...].
// Schema qualifiers are dropped from the table name.
func CanonicalIndexName(table string, columns []string) string {
	return "index_" + UnqualifiedName(table) + "_on_" + strings.Join(columns, "_and_")
}
