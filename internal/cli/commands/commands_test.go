package commands

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/config"

	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/sqlite"
	_ "github.com/leapstack-labs/leaprecord/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/leaprecord/pkg/dialects/postgres"
)

func offlineConfig(dialectName string) *config.Config {
	return &config.Config{
		Target:       &config.TargetConfig{Type: dialectName},
		Timezone:     "UTC",
		OutputFormat: "plain",
	}
}

func run(t *testing.T, cfg *config.Config, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(config.WithConfig(t.Context(), cfg))
	return out.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewDialectsCommand(), "dialects", nil},
		{NewTypesCommand(), "types", nil},
		{NewCastCommand(), "cast <kind> [raw]", []string{"null"}},
		{NewQuoteCommand(), "quote [kind] <value>", []string{"null", "identifier"}},
		{NewPaginateCommand(), "paginate <sql>", []string{"limit", "offset"}},
		{NewDDLCommand(), "ddl", nil},
		{NewTablesCommand(), "tables", nil},
		{NewIndexesCommand(), "indexes <table>", nil},
		{NewColumnsCommand(), "columns <table>", nil},
		{NewSequenceCommand(), "sequence <table>", []string{"pk"}},
		{NewInsertCommand(), "insert <sql>", []string{"table", "pk", "sequence"}},
		{NewQueryCommand(), "query <sql>", []string{"limit", "offset", "types"}},
		{NewHistoryCommand(), "history", []string{"table", "limit"}},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestDDLCommand_Subcommands(t *testing.T) {
	cmd := NewDDLCommand()
	assert.NotNil(t, cmd.PersistentFlags().Lookup("apply"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{
		"add-column", "change-column", "change-default", "rename-column",
		"rename-table", "remove-column", "add-index", "remove-index",
	}, names)
}

func TestOfflineCommands(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		cmd     func() *cobra.Command
		args    []string
		want    string
	}{
		{"quote string", "postgres", NewQuoteCommand, []string{"string", `a\b`}, "'a\\b'\n"},
		{"quote boolean", "mysql", NewQuoteCommand, []string{"boolean", "true"}, "1\n"},
		{"quote null", "mysql", NewQuoteCommand, []string{"date", "--null"}, "NULL\n"},
		{"quote identifier", "postgres", NewQuoteCommand, []string{"--identifier", "Users"}, "\"Users\"\n"},
		{"cast null", "postgres", NewCastCommand, []string{"integer", "--null"}, "null\tNULL\n"},
		{"cast midnight", "postgres", NewCastCommand, []string{"datetime", "2024-03-01 00:00:00"}, "date\t2024-03-01\n"},
		{"paginate", "postgres", NewPaginateCommand, []string{"select * from t", "--limit", "10", "--offset", "5"}, "select * from t LIMIT 10 OFFSET 5\n"},
		{"simplify", "mysql", NewTypesCommand, []string{"simplify", "varchar(255)"}, "varchar(255)\tstring\t255\n"},
		{
			"add column", "postgres", NewDDLCommand,
			[]string{"add-column", "users", "Nick", "string", "--limit", "30"},
			"ALTER TABLE users ADD COLUMN \"Nick\" character varying(30);\n",
		},
		{
			"set default", "postgres", NewDDLCommand,
			[]string{"change-default", "users", "name", "anon"},
			"ALTER TABLE users ALTER COLUMN name SET DEFAULT 'anon';\n",
		},
		{
			"drop default", "postgres", NewDDLCommand,
			[]string{"change-default", "users", "name", "--null"},
			"ALTER TABLE users ALTER COLUMN name DROP DEFAULT;\n",
		},
		{
			"rename table", "mysql", NewDDLCommand,
			[]string{"rename-table", "users", "people"},
			"RENAME TABLE users TO people;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, offlineConfig(tt.dialect), tt.cmd(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestOfflineCommands_JSON(t *testing.T) {
	cfg := offlineConfig("mysql")
	cfg.OutputFormat = "json"

	out, err := run(t, cfg, NewDDLCommand(), "remove-index", "users", "--columns", "email")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"op": "remove_index",
		"table": "users",
		"atomic": false,
		"statements": ["DROP INDEX index_users_on_email ON users"]
	}`, out)
}

func TestOfflineCommands_Errors(t *testing.T) {
	_, err := run(t, offlineConfig("postgres"), NewCastCommand(), "money", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown logical type "money"`)

	_, err = run(t, offlineConfig("postgres"), NewDDLCommand(), "remove-index", "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--name or --columns")

	_, err = run(t, offlineConfig("oracle"), NewPaginateCommand(), "select 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "oracle"`)
}

// sqliteTarget creates a database file with a users table and returns a
// config pointing at it.
func sqliteTarget(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name varchar(40) DEFAULT 'anon',
		age text
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users (name, age) VALUES ('ada', '42')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	return &config.Config{
		Target:       &config.TargetConfig{Type: "sqlite", Path: path},
		Timezone:     "UTC",
		OutputFormat: "plain",
	}
}

func TestTargetCommands_SQLite(t *testing.T) {
	cfg := sqliteTarget(t)

	out, err := run(t, cfg, NewTablesCommand())
	require.NoError(t, err)
	assert.Equal(t, "users\n", out)

	out, err = run(t, cfg, NewInsertCommand(), "INSERT INTO users (name, age) VALUES ('bob', '7')")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = run(t, cfg, NewColumnsCommand(), "users")
	require.NoError(t, err)
	assert.Contains(t, out, "\tstring\t40\t")
	assert.Contains(t, out, "anon")

	_, err = run(t, cfg, NewDDLCommand(), "add-index", "users", "name", "--apply")
	require.NoError(t, err)
	out, err = run(t, cfg, NewIndexesCommand(), "users")
	require.NoError(t, err)
	assert.Contains(t, out, "index_users_on_name\tfalse\tname")

	_, err = run(t, cfg, NewDDLCommand(), "change-column", "users", "age", "integer", "--apply")
	require.NoError(t, err)
	out, err = run(t, cfg, NewQueryCommand(), "SELECT typeof(age), age FROM users ORDER BY id", "--types", "string,integer")
	require.NoError(t, err)
	assert.Equal(t, "integer\t42\ninteger\t7\n", out)

	out, err = run(t, cfg, NewQueryCommand(), "SELECT name FROM users ORDER BY id", "--limit", "1", "--offset", "1")
	require.NoError(t, err)
	assert.Equal(t, "bob\n", out)
}

func TestTargetCommands_QueryJSONKeepsNulls(t *testing.T) {
	cfg := sqliteTarget(t)
	cfg.OutputFormat = "json"

	out, err := run(t, cfg, NewQueryCommand(), "SELECT name, NULL AS nick FROM users", "--types", "string,string")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "ada", "nick": null}]`, out)
}
