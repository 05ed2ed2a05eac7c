package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/connection"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

type planView struct {
	Op         string   `json:"op" yaml:"op"`
	Table      string   `json:"table" yaml:"table"`
	Column     string   `json:"column,omitempty" yaml:"column,omitempty"`
	Atomic     bool     `json:"atomic" yaml:"atomic"`
	Statements []string `json:"statements" yaml:"statements"`
}

// planBuilder synthesizes a schema change for a dialect.
type planBuilder func(d dialect.Dialect) (dialect.Plan, error)

// columnFlags are the options shared by add-column and change-column.
type columnFlags struct {
	limit       int
	precision   int
	scale       int
	notNull     bool
	def         string
	nullDefault bool
}

func (f *columnFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.limit, "limit", 0, "Column length limit")
	fs.IntVar(&f.precision, "precision", 0, "Numeric precision")
	fs.IntVar(&f.scale, "scale", 0, "Numeric scale")
	fs.BoolVar(&f.notNull, "not-null", false, "Add a NOT NULL constraint")
	fs.StringVar(&f.def, "default", "", "Default value, read as the column's kind")
	fs.BoolVar(&f.nullDefault, "null-default", false, "Set an explicit NULL default")
}

// options reads the flags into column options. The default is cast with the
// dialect's caster so that it is quoted as the column's kind.
func (f *columnFlags) options(cmd *cobra.Command, d dialect.Caster, kind core.LogicalType) core.ColumnOptions {
	opts := core.ColumnOptions{
		Limit:     f.limit,
		Precision: f.precision,
		Scale:     f.scale,
		NotNull:   f.notNull,
	}
	switch {
	case f.nullDefault:
		opts = opts.WithDefault(core.Null())
	case cmd.Flags().Changed("default"):
		opts = opts.WithDefault(d.Cast(core.Raw(f.def), kind))
	}
	return opts
}

// NewDDLCommand creates the ddl command and its subcommands.
func NewDDLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Generate or apply schema changes",
		Long: `Generate the SQL a schema change needs in the selected dialect.

By default the statements are printed and nothing is executed. Pass
--apply to run them against the configured target; multi-statement
changes run in a single transaction and roll back together on failure.
Applied changes are recorded in the history database (see history).`,
		Example: `  leaprecord ddl add-column users nickname string --limit 30 --dialect postgres
  leaprecord ddl change-column users age integer --dialect sqlite
  leaprecord ddl change-column users age integer --apply`,
	}
	cmd.PersistentFlags().Bool("apply", false, "Execute the statements against the target")

	cmd.AddCommand(
		newAddColumnCommand(),
		newChangeColumnCommand(),
		newChangeDefaultCommand(),
		newRenameColumnCommand(),
		newRenameTableCommand(),
		newRemoveColumnCommand(),
		newAddIndexCommand(),
		newRemoveIndexCommand(),
	)
	return cmd
}

// runDDL prints the plan, or applies it when --apply is set. Applied plans
// are journaled in the history database, failed ones included.
func runDDL(cmd *cobra.Command, build planBuilder) error {
	apply, _ := cmd.Flags().GetBool("apply")
	if apply {
		return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
			plan, err := build(conn.Dialect())
			if err != nil {
				return err
			}
			applyErr := conn.Apply(cmd.Context(), plan)
			cc.recordChange(cmd.Context(), conn.Dialect().Name(), plan, applyErr)
			if applyErr != nil {
				return applyErr
			}
			cc.Logger.Info("schema change applied", "op", plan.Op, "table", plan.Table)
			_, err = fmt.Fprintln(cmd.ErrOrStderr(), "Applied.")
			return err
		})
	}

	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	d, err := cc.Dialect()
	if err != nil {
		return err
	}
	plan, err := build(d)
	if err != nil {
		return err
	}
	view := planView{
		Op:         plan.Op,
		Table:      plan.Table,
		Column:     plan.Column,
		Atomic:     plan.Atomic,
		Statements: plan.Statements,
	}
	if view.Statements == nil {
		view.Statements = []string{}
	}
	rows := make([][]string, len(plan.Statements))
	for i, stmt := range plan.Statements {
		rows[i] = []string{stmt + ";"}
	}
	return cc.Renderer.Render(view, output.Table{Headers: []string{"Statement"}, Rows: rows})
}

func newAddColumnCommand() *cobra.Command {
	var f columnFlags
	cmd := &cobra.Command{
		Use:   "add-column <table> <column> <kind>",
		Short: "Add a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[2])
			if err != nil {
				return err
			}
			table, column := args[0], args[1]
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.AddColumn(table, column, kind, f.options(cmd, d, kind))
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newChangeColumnCommand() *cobra.Command {
	var f columnFlags
	cmd := &cobra.Command{
		Use:   "change-column <table> <column> <kind>",
		Short: "Change a column's type and options",
		Long: `Change a column's type, nullability and default.

Dialects without ALTER COLUMN support copy the data through a temporary
column; the generated plan shows every step.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[2])
			if err != nil {
				return err
			}
			table, column := args[0], args[1]
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.ChangeColumn(table, column, kind, f.options(cmd, d, kind))
			})
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newChangeDefaultCommand() *cobra.Command {
	var (
		kindName string
		null     bool
	)
	cmd := &cobra.Command{
		Use:   "change-default <table> <column> [default]",
		Short: "Change or drop a column default",
		Long:  `Set a column default. With --null, or without a default argument, the default is dropped.`,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindName)
			if err != nil {
				return err
			}
			table, column := args[0], args[1]
			value := func(c dialect.Caster) core.Value {
				if null || len(args) < 3 {
					return core.Null()
				}
				return c.Cast(core.Raw(args[2]), kind)
			}
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.ChangeColumnDefault(table, column, value(d))
			})
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", core.String.String(), "Logical kind of the default value")
	cmd.Flags().BoolVar(&null, "null", false, "Drop the default")
	_ = cmd.RegisterFlagCompletionFunc("kind", kindNames)
	return cmd
}

func newRenameColumnCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-column <table> <from> <to>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, from, to := args[0], args[1], args[2]
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.RenameColumn(table, from, to)
			})
		},
	}
}

func newRenameTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-table <from> <to>",
		Short: "Rename a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[0], args[1]
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.RenameTable(from, to)
			})
		},
	}
}

func newRemoveColumnCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove-column <table> <column>",
		Aliases: []string{"drop-column"},
		Short:   "Remove a column",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, column := args[0], args[1]
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.RemoveColumn(table, column)
			})
		},
	}
}

func newAddIndexCommand() *cobra.Command {
	var opts dialect.IndexOptions
	cmd := &cobra.Command{
		Use:   "add-index <table> <column>[,<column>...]",
		Short: "Create an index",
		Long:  `Create an index. The name defaults to index_<table>_on_<columns>.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, columns := args[0], splitList(args[1])
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.AddIndex(table, columns, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "Index name")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "Create a unique index")
	return cmd
}

func newRemoveIndexCommand() *cobra.Command {
	var (
		name    string
		columns string
	)
	cmd := &cobra.Command{
		Use:     "remove-index <table>",
		Aliases: []string{"drop-index"},
		Short:   "Drop an index by name or by its columns",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && columns == "" {
				return fmt.Errorf("one of --name or --columns is required")
			}
			table := args[0]
			ref := dialect.IndexRef{Name: name, Columns: splitList(columns)}
			return runDDL(cmd, func(d dialect.Dialect) (dialect.Plan, error) {
				return d.RemoveIndex(table, ref)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Index name")
	cmd.Flags().StringVar(&columns, "columns", "", "Comma-separated indexed columns")
	return cmd
}

// splitList splits a comma-separated argument, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
