package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/config"
	"github.com/leapstack-labs/leaprecord/pkg/connection"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer

	dialectName string
}

// NewCommandContext builds a CommandContext from the config loaded by the
// root command. Commands run on their own load the config from the
// working directory.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		var err error
		if cfg, err = config.Load("", "", nil); err != nil {
			return nil, err
		}
	}

	name := cfg.Target.Type
	if f := cmd.Flag("dialect"); f != nil && f.Value.String() != "" {
		name = f.Value.String()
	}

	return &CommandContext{
		Cfg:         cfg,
		Logger:      config.GetLogger(cmd.Context()),
		Renderer:    output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
		dialectName: name,
	}, nil
}

func (c *CommandContext) options() (dialect.Options, error) {
	loc, err := c.Cfg.Location()
	if err != nil {
		return dialect.Options{}, err
	}
	return dialect.Options{Location: loc}, nil
}

// Dialect returns the dialect selected by --dialect, or the target's dialect.
func (c *CommandContext) Dialect() (dialect.Dialect, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	return dialect.New(c.dialectName, opts)
}

// Connect opens a connection to the configured target.
// The caller must close it.
func (c *CommandContext) Connect(ctx context.Context) (*connection.Connection, error) {
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	return connection.Open(ctx, c.Cfg.Target.AdapterConfig(), opts, c.Logger)
}

// withConnection runs fn against a freshly opened connection.
func withConnection(cmd *cobra.Command, fn func(cc *CommandContext, conn *connection.Connection) error) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	conn, err := cc.Connect(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			cc.Logger.Warn("failed to close connection", "error", cerr)
		}
	}()
	return fn(cc, conn)
}

// parseKind parses a logical type argument.
func parseKind(s string) (core.LogicalType, error) {
	kind, err := core.ParseLogicalType(s)
	if err != nil {
		return core.Unspecified, fmt.Errorf("%w (expected one of %v)", err, core.LogicalTypes())
	}
	return kind, nil
}

// kindNames lists logical type names for shell completion.
func kindNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(core.LogicalTypes()))
	for _, k := range core.LogicalTypes() {
		names = append(names, k.String())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
