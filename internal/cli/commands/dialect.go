package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

type dialectView struct {
	Name          string `json:"name" yaml:"name"`
	DefaultSchema string `json:"default_schema" yaml:"default_schema"`
	Identity      string `json:"identity" yaml:"identity"`
	Quote         string `json:"quote" yaml:"quote"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			var views []dialectView
			t := output.Table{Headers: []string{"Dialect", "Default Schema", "Identity", "Quote"}}
			for _, name := range dialect.List() {
				d, err := dialect.New(name, dialect.Options{})
				if err != nil {
					return err
				}
				cfg := d.Config()
				v := dialectView{
					Name:          name,
					DefaultSchema: cfg.DefaultSchema,
					Identity:      d.IdentityKind().String(),
					Quote:         d.QuoteIdentifier("Order Items"),
				}
				views = append(views, v)
				t.Rows = append(t.Rows, []string{v.Name, v.DefaultSchema, v.Identity, v.Quote})
			}
			return cc.Renderer.Render(views, t)
		},
	}
}

type typeView struct {
	Logical string `json:"logical" yaml:"logical"`
	Native  string `json:"native" yaml:"native"`
	SQL     string `json:"sql" yaml:"sql"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Show the dialect's type catalog",
		Long: `Show how each logical column kind maps to a native SQL type.

Use the simplify subcommand to go the other way, from a native type
string to a logical kind and length limit.`,
		Example: `  leaprecord types --dialect postgres
  leaprecord types simplify "varchar(255)" --dialect mysql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := cc.Dialect()
			if err != nil {
				return err
			}

			var views []typeView
			t := output.Table{Headers: []string{"Logical", "Native", "SQL"}}
			for _, kind := range core.LogicalTypes() {
				spec, err := d.NativeType(kind)
				if err != nil {
					return err
				}
				sql, err := d.TypeToSQL(kind, core.ColumnOptions{})
				if err != nil {
					return err
				}
				v := typeView{Logical: kind.String(), Native: spec.Name, SQL: sql}
				views = append(views, v)
				t.Rows = append(t.Rows, []string{v.Logical, v.Native, v.SQL})
			}
			return cc.Renderer.Render(views, t)
		},
	}
	cmd.AddCommand(newTypesSimplifyCommand())
	return cmd
}

type simplifiedView struct {
	SQLType string `json:"sql_type" yaml:"sql_type"`
	Logical string `json:"logical" yaml:"logical"`
	Limit   int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

func newTypesSimplifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "simplify <sql-type>",
		Short: "Classify a native SQL type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := cc.Dialect()
			if err != nil {
				return err
			}

			v := simplifiedView{
				SQLType: args[0],
				Logical: d.SimplifiedType(args[0]).String(),
				Limit:   d.ExtractLimit(args[0]),
			}
			limit := ""
			if v.Limit > 0 {
				limit = strconv.Itoa(v.Limit)
			}
			return cc.Renderer.Render(v, output.Table{
				Headers: []string{"SQL Type", "Logical", "Limit"},
				Rows:    [][]string{{v.SQLType, v.Logical, limit}},
			})
		},
	}
}

type castView struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value string `json:"value" yaml:"value"`
}

// NewCastCommand creates the cast command.
func NewCastCommand() *cobra.Command {
	var null bool
	cmd := &cobra.Command{
		Use:   "cast <kind> [raw]",
		Short: "Cast a raw database value to a logical kind",
		Example: `  leaprecord cast datetime "2024-03-01 00:00:00"
  leaprecord cast boolean t --dialect postgres
  leaprecord cast binary 48656c6c6f --dialect mssql
  leaprecord cast integer --null`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: kindNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := cc.Dialect()
			if err != nil {
				return err
			}
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}

			raw := core.NullRaw()
			if !null {
				if len(args) < 2 {
					return cmd.Usage()
				}
				raw = core.Raw(args[1])
			}
			v := d.Cast(raw, kind)
			view := castView{Kind: v.Kind().String(), Value: v.String()}
			return cc.Renderer.Render(view, output.Table{
				Headers: []string{"Kind", "Value"},
				Rows:    [][]string{{view.Kind, view.Value}},
			})
		},
	}
	cmd.Flags().BoolVar(&null, "null", false, "Cast a NULL raw value")
	return cmd
}

// NewQuoteCommand creates the quote command.
func NewQuoteCommand() *cobra.Command {
	var (
		null       bool
		identifier bool
	)
	cmd := &cobra.Command{
		Use:   "quote [kind] <value>",
		Short: "Render a value or identifier as a SQL literal",
		Long: `Render a value as a SQL literal in the selected dialect.

The value is first read as the given kind, the way a value loaded from
the database would be, and then quoted. With --identifier the single
argument is quoted as a table or column name instead.`,
		Example: `  leaprecord quote string "O'Reilly" --dialect mysql
  leaprecord quote boolean true --dialect mssql
  leaprecord quote date --null
  leaprecord quote --identifier "Order Items" --dialect mssql`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: kindNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := cc.Dialect()
			if err != nil {
				return err
			}

			if identifier {
				return cc.Renderer.Value("sql", d.QuoteIdentifier(args[len(args)-1]))
			}

			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			v := core.Null()
			if !null {
				if len(args) < 2 {
					return cmd.Usage()
				}
				v = d.Cast(core.Raw(args[1]), kind)
			}
			return cc.Renderer.Value("sql", d.Quote(v, kind))
		},
	}
	cmd.Flags().BoolVar(&null, "null", false, "Quote a NULL value")
	cmd.Flags().BoolVar(&identifier, "identifier", false, "Quote the argument as an identifier")
	return cmd
}

// NewPaginateCommand creates the paginate command.
func NewPaginateCommand() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "paginate <sql>",
		Short: "Apply LIMIT/OFFSET to a query the dialect's way",
		Example: `  leaprecord paginate "SELECT * FROM users" --limit 10 --offset 20 --dialect hsqldb
  leaprecord paginate "SELECT * FROM users ORDER BY id" --limit 5 --dialect mssql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			d, err := cc.Dialect()
			if err != nil {
				return err
			}
			return cc.Renderer.Value("sql", d.ApplyLimitOffset(args[0], limit, offset))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (0 for none)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip (0 for none)")
	return cmd
}
