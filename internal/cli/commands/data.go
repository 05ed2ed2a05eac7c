package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/connection"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var (
		table    string
		pk       string
		sequence string
	)
	cmd := &cobra.Command{
		Use:   "insert <sql>",
		Short: "Run an INSERT and report the generated primary key",
		Long: `Run an INSERT statement and report the primary key the database generated.

The table is read from the statement unless --table is given. Dialects
that use sequences discover the sequence from the catalog; pass
--sequence to skip discovery.`,
		Example: `  leaprecord insert "INSERT INTO users (name) VALUES ('ada')"
  leaprecord insert "INSERT INTO orders (total) VALUES (10)" --sequence billing.order_seq`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				id, err := conn.Insert(cmd.Context(), args[0], connection.InsertOptions{
					Table:      table,
					PrimaryKey: pk,
					Sequence:   core.ParseSequenceRef(sequence),
				})
				if err != nil {
					return err
				}
				return cc.Renderer.Value("id", id.String())
			})
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Target table (default: read from the statement)")
	cmd.Flags().StringVar(&pk, "pk", "id", "Primary key column")
	cmd.Flags().StringVar(&sequence, "sequence", "", "Sequence that generates the key")
	return cmd
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var (
		limit  int
		offset int
		types  []string
	)
	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print typed rows",
		Long: `Run a query against the target and print the rows.

Each column is cast with the logical kind given by --types, in column
order; columns without a kind are printed as strings. --limit and
--offset are applied with the dialect's pagination syntax.`,
		Example: `  leaprecord query "SELECT id, name, created_at FROM users" --types integer,string,datetime
  leaprecord query "SELECT * FROM users ORDER BY id" --limit 10 --offset 20 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := make([]core.LogicalType, len(types))
			for i, name := range types {
				kind, err := parseKind(name)
				if err != nil {
					return err
				}
				kinds[i] = kind
			}
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				res, err := conn.SelectPage(cmd.Context(), args[0], limit, offset, kinds...)
				if err != nil {
					return err
				}
				return renderResult(cc.Renderer, res)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of rows (0 for none)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip (0 for none)")
	cmd.Flags().StringSliceVar(&types, "types", nil, "Logical kind of each column, comma-separated")
	return cmd
}

// renderResult prints rows as a table, or as a list of objects in JSON/YAML
// where nulls stay null.
func renderResult(r *output.Renderer, res *connection.Result) error {
	records := make([]map[string]any, len(res.Rows))
	rows := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		record := make(map[string]any, len(row))
		text := make([]string, len(row))
		for j, v := range row {
			text[j] = v.String()
			if j < len(res.Columns) {
				if v.IsNull() {
					record[res.Columns[j]] = nil
				} else {
					record[res.Columns[j]] = v.String()
				}
			}
		}
		records[i] = record
		rows[i] = text
	}
	return r.Render(records, output.Table{Headers: res.Columns, Rows: rows})
}
