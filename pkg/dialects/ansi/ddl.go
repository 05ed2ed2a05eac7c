package ansi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// AddColumn adds a column of the given kind.
func (b *Base) AddColumn(table, column string, kind core.LogicalType, opts core.ColumnOptions) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpAddColumn, Table: table, Column: column}
	def, err := b.columnDefinition(table, column, kind, opts)
	if err != nil {
		return plan, err
	}
	keyword := b.rules.DDL.AddColumn
	if keyword == "" {
		keyword = "ADD COLUMN"
	}
	plan.Statements = []string{fmt.Sprintf("ALTER TABLE %s %s %s", b.QuoteIdentifier(table), keyword, def)}
	return plan, nil
}

// columnDefinition renders "<column> <type> [DEFAULT x] [NOT NULL]".
func (b *Base) columnDefinition(table, column string, kind core.LogicalType, opts core.ColumnOptions) (string, error) {
	typ, err := b.TypeToSQL(kind, opts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(b.QuoteIdentifier(column))
	sb.WriteString(" ")
	sb.WriteString(typ)
	if opts.Default != nil && !opts.Default.IsNull() {
		literal := b.Quote(*opts.Default, kind)
		sb.WriteString(" ")
		if b.rules.DDL.DefaultClause != nil {
			sb.WriteString(b.rules.DDL.DefaultClause(table, column, literal))
		} else {
			sb.WriteString("DEFAULT " + literal)
		}
	}
	if opts.NotNull {
		sb.WriteString(" NOT NULL")
	}
	return sb.String(), nil
}

// ChangeColumn changes a column's type, and its default when opts carries one.
func (b *Base) ChangeColumn(table, column string, kind core.LogicalType, opts core.ColumnOptions) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpChangeColumn, Table: table, Column: column}
	if b.rules.DDL.CopyFallback {
		return b.copyChangeColumn(table, column, kind, opts)
	}

	typ, err := b.TypeToSQL(kind, opts)
	if err != nil {
		return plan, err
	}
	qt, qc := b.QuoteIdentifier(table), b.QuoteIdentifier(column)

	var stmts []string
	if b.rules.DDL.AlterType != nil {
		stmts = b.rules.DDL.AlterType(qt, qc, typ, opts.NotNull)
	} else {
		stmts = []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DATA TYPE %s", qt, qc, typ)}
		if opts.NotNull {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", qt, qc))
		}
	}
	plan = plan.Append(stmts...)

	if opts.Default != nil {
		plan = plan.Append(b.defaultStatements(table, column, b.defaultLiteral(*opts.Default, kind))...)
	}
	return plan, nil
}

// copyChangeColumn emulates alter-type: add a temporary column, copy with a cast,
// drop the original and rename the temporary column into place. The plan is atomic.
// A NOT NULL temporary column can only be added with a non-null default.
func (b *Base) copyChangeColumn(table, column string, kind core.LogicalType, opts core.ColumnOptions) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpChangeColumn, Table: table, Column: column, Atomic: true}
	if opts.NotNull && (opts.Default == nil || opts.Default.IsNull()) {
		return plan, &core.UnsupportedOperationError{
			Dialect: b.Name(),
			Op:      dialect.OpChangeColumn,
			Reason:  "NOT NULL requires a non-null default when the column is copied",
		}
	}
	typ, err := b.TypeToSQL(kind, opts)
	if err != nil {
		return plan, err
	}
	tmp := b.tempColumn(column)
	def, err := b.columnDefinition(table, tmp, kind, opts)
	if err != nil {
		return plan, err
	}
	qt, qc, qtmp := b.QuoteIdentifier(table), b.QuoteIdentifier(column), b.QuoteIdentifier(tmp)

	plan.Statements = []string{
		fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", qt, def),
		fmt.Sprintf("UPDATE %s SET %s = CAST(%s AS %s)", qt, qtmp, qc, typ),
		fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", qt, qc),
		b.renameColumnSQL(qt, qtmp, qc),
	}
	return plan, nil
}

func (b *Base) tempColumn(column string) string {
	if b.opts.TempColumn != nil {
		return b.opts.TempColumn(column)
	}
	return column + "_tmp_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// ChangeColumnDefault sets a column default; a null default drops it.
func (b *Base) ChangeColumnDefault(table, column string, def core.Value) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpChangeColumnDefault, Table: table, Column: column}
	if b.rules.DDL.NoDefaultChange {
		return plan, &core.UnsupportedOperationError{
			Dialect: b.Name(),
			Op:      dialect.OpChangeColumnDefault,
			Reason:  "use change_column with a default option",
		}
	}
	return plan.Append(b.defaultStatements(table, column, b.defaultLiteral(def, core.Unspecified))...), nil
}

func (b *Base) defaultLiteral(def core.Value, kind core.LogicalType) string {
	if def.IsNull() {
		return ""
	}
	return b.Quote(def, kind)
}

func (b *Base) defaultStatements(table, column, literal string) []string {
	if b.rules.DDL.Default != nil {
		return b.rules.DDL.Default(table, column, literal)
	}
	qt, qc := b.QuoteIdentifier(table), b.QuoteIdentifier(column)
	if literal == "" {
		return []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", qt, qc)}
	}
	return []string{fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", qt, qc, literal)}
}

// RenameColumn renames a column.
func (b *Base) RenameColumn(table, from, to string) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpRenameColumn, Table: table, Column: from}
	return plan.Append(b.renameColumnSQL(b.QuoteIdentifier(table), b.QuoteIdentifier(from), b.QuoteIdentifier(to))), nil
}

func (b *Base) renameColumnSQL(table, from, to string) string {
	if b.rules.DDL.RenameColumn != nil {
		return b.rules.DDL.RenameColumn(table, from, to)
	}
	return fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s", table, from, to)
}

// RenameTable renames a table.
func (b *Base) RenameTable(from, to string) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpRenameTable, Table: from}
	qf, qt := b.QuoteIdentifier(from), b.QuoteIdentifier(to)
	if b.rules.DDL.RenameTable != nil {
		return plan.Append(b.rules.DDL.RenameTable(qf, qt)), nil
	}
	return plan.Append(fmt.Sprintf("ALTER TABLE %s RENAME TO %s", qf, qt)), nil
}

// RemoveColumn drops a column.
func (b *Base) RemoveColumn(table, column string) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpRemoveColumn, Table: table, Column: column}
	if b.rules.DDL.DropColumn != nil {
		return plan.Append(b.rules.DDL.DropColumn(table, column)...), nil
	}
	return plan.Append(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", b.QuoteIdentifier(table), b.QuoteIdentifier(column))), nil
}

// IndexName returns the canonical index name.
func (b *Base) IndexName(table string, columns []string) string {
	return dialect.CanonicalIndexName(table, columns)
}

// AddIndex creates an index over columns.
func (b *Base) AddIndex(table string, columns []string, opts dialect.IndexOptions) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpAddIndex, Table: table}
	if len(columns) == 0 {
		return plan, fmt.Errorf("add index on %s: no columns", table)
	}
	name := opts.Name
	if name == "" {
		name = b.IndexName(table, columns)
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = b.QuoteIdentifier(c)
	}
	unique := ""
	if opts.Unique {
		unique = "UNIQUE "
	}
	return plan.Append(fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		unique, b.QuoteIdentifier(name), b.QuoteIdentifier(table), strings.Join(quoted, ", "))), nil
}

// RemoveIndex drops an index named explicitly or by its columns.
func (b *Base) RemoveIndex(table string, ref dialect.IndexRef) (dialect.Plan, error) {
	plan := dialect.Plan{Op: dialect.OpRemoveIndex, Table: table}
	name := ref.Name
	if name == "" {
		if len(ref.Columns) == 0 {
			return plan, fmt.Errorf("remove index on %s: name or columns required", table)
		}
		name = b.IndexName(table, ref.Columns)
	}
	qn := b.QuoteIdentifier(name)
	if b.rules.DDL.DropIndex != nil {
		return plan.Append(b.rules.DDL.DropIndex(b.QuoteIdentifier(table), qn)), nil
	}
	return plan.Append("DROP INDEX " + qn), nil
}
