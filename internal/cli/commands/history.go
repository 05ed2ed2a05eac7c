package commands

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/history"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// errHistoryDisabled is returned by the history command when no journal is configured.
var errHistoryDisabled = errors.New("history is disabled (set history in leaprecord.yaml)")

// openHistory opens the configured history database. The caller must close it.
func (c *CommandContext) openHistory() (*history.Store, error) {
	if c.Cfg.History == "" {
		return nil, errHistoryDisabled
	}
	store := history.NewStore(c.Logger)
	if err := store.Open(c.Cfg.History); err != nil {
		return nil, err
	}
	return store, nil
}

// targetName identifies the configured target in the journal.
func (c *CommandContext) targetName() string {
	t := c.Cfg.Target
	switch {
	case t.Database != "" && t.Host != "":
		return t.Host + "/" + t.Database
	case t.Database != "":
		return t.Database
	default:
		return t.Path
	}
}

// recordChange journals an applied plan. Journal failures are logged and
// never fail the schema change itself.
func (c *CommandContext) recordChange(ctx context.Context, dialectName string, plan dialect.Plan, applyErr error) {
	if c.Cfg.History == "" {
		return
	}
	store, err := c.openHistory()
	if err != nil {
		c.Logger.Warn("failed to open history", "path", c.Cfg.History, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	change := history.Change{
		Op:         plan.Op,
		Table:      plan.Table,
		Column:     plan.Column,
		Dialect:    dialectName,
		Target:     c.targetName(),
		Statements: plan.Statements,
		Atomic:     plan.Atomic,
		Status:     history.StatusApplied,
	}
	if applyErr != nil {
		change.Status = history.StatusFailed
		change.Error = applyErr.Error()
	}
	if _, err := store.Record(ctx, change); err != nil {
		c.Logger.Warn("failed to record change", "op", plan.Op, "error", err)
	}
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var opts history.ListOptions
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List schema changes applied with ddl --apply",
		Long: `List the schema changes applied from this directory, newest first.

Every ddl --apply run is journaled in the history database, including
changes that failed and were rolled back.`,
		Example: `  leaprecord history
  leaprecord history --table users --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			store, err := cc.openHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			changes, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if changes == nil {
				changes = []*history.Change{}
			}

			t := output.Table{Headers: []string{"Applied At", "Op", "Table", "Column", "Dialect", "Status", "Statements"}}
			for _, c := range changes {
				t.Rows = append(t.Rows, []string{
					c.AppliedAt.Format(time.RFC3339),
					c.Op,
					c.Table,
					c.Column,
					c.Dialect,
					string(c.Status),
					strconv.Itoa(len(c.Statements)),
				})
			}
			return cc.Renderer.Render(changes, t)
		},
	}
	cmd.Flags().StringVar(&opts.Table, "table", "", "Only show changes to this table")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum number of changes (0 for all)")
	return cmd
}
