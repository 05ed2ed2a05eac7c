package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/connection"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List user tables of the target",
		Long:  `List the tables of the configured target. System and catalog tables are hidden.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				tables, err := conn.Tables(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, len(tables))
				for i, t := range tables {
					rows[i] = []string{t}
				}
				if tables == nil {
					tables = []string{}
				}
				return cc.Renderer.Render(tables, output.Table{Headers: []string{"Table"}, Rows: rows})
			})
		},
	}
}

type indexView struct {
	Name    string   `json:"name" yaml:"name"`
	Unique  bool     `json:"unique" yaml:"unique"`
	Columns []string `json:"columns" yaml:"columns"`
}

// NewIndexesCommand creates the indexes command.
func NewIndexesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes <table>",
		Short: "List the indexes of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				indexes, err := conn.Indexes(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				views := make([]indexView, len(indexes))
				rows := make([][]string, len(indexes))
				for i, idx := range indexes {
					views[i] = indexView{Name: idx.Name, Unique: idx.Unique, Columns: idx.Columns}
					rows[i] = []string{idx.Name, strconv.FormatBool(idx.Unique), strings.Join(idx.Columns, ", ")}
				}
				return cc.Renderer.Render(views, output.Table{Headers: []string{"Index", "Unique", "Columns"}, Rows: rows})
			})
		},
	}
}

type columnView struct {
	Name       string  `json:"name" yaml:"name"`
	SQLType    string  `json:"sql_type" yaml:"sql_type"`
	Type       string  `json:"type" yaml:"type"`
	Limit      int     `json:"limit,omitempty" yaml:"limit,omitempty"`
	Nullable   bool    `json:"nullable" yaml:"nullable"`
	PrimaryKey bool    `json:"primary_key" yaml:"primary_key"`
	Default    *string `json:"default" yaml:"default"`
}

func newColumnView(c core.Column) columnView {
	v := columnView{
		Name:       c.Name,
		SQLType:    c.SQLType,
		Type:       c.Type.String(),
		Limit:      c.Limit,
		Nullable:   c.Nullable,
		PrimaryKey: c.PrimaryKey,
	}
	if !c.Default.IsNull() {
		s := c.Default.String()
		v.Default = &s
	}
	return v
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <table>",
		Short: "Describe the columns of a table",
		Long: `Describe the columns of a table with their native type, the logical
kind it maps to, the length limit and the interpreted default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				columns, err := conn.Columns(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				views := make([]columnView, len(columns))
				rows := make([][]string, len(columns))
				for i, c := range columns {
					v := newColumnView(c)
					views[i] = v
					limit, def := "", ""
					if v.Limit > 0 {
						limit = strconv.Itoa(v.Limit)
					}
					if v.Default != nil {
						def = *v.Default
					}
					rows[i] = []string{v.Name, v.SQLType, v.Type, limit, strconv.FormatBool(v.Nullable), strconv.FormatBool(v.PrimaryKey), def}
				}
				return cc.Renderer.Render(views, output.Table{
					Headers: []string{"Column", "SQL Type", "Type", "Limit", "Nullable", "PK", "Default"},
					Rows:    rows,
				})
			})
		},
	}
}

// NewSequenceCommand creates the sequence command.
func NewSequenceCommand() *cobra.Command {
	var pk string
	cmd := &cobra.Command{
		Use:   "sequence <table>",
		Short: "Find the sequence behind a table's primary key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConnection(cmd, func(cc *CommandContext, conn *connection.Connection) error {
				seq, err := conn.Sequence(cmd.Context(), args[0], pk)
				if err != nil {
					return err
				}
				return cc.Renderer.Value("sequence", seq.String())
			})
		},
	}
	cmd.Flags().StringVar(&pk, "pk", "id", "Primary key column")
	return cmd
}
