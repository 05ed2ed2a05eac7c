package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/testutil"
	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
	pgdialect "github.com/leapstack-labs/leaprecord/pkg/dialects/postgres"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   core.AdapterConfig
		expected string
	}{
		{
			name: "basic connection",
			config: core.AdapterConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "testdb",
				Username: "user",
				Password: "pass",
			},
			expected: "host=localhost port=5432 dbname=testdb sslmode=disable user=user password=pass",
		},
		{
			name: "with custom sslmode",
			config: core.AdapterConfig{
				Host:     "prod.example.com",
				Port:     5432,
				Database: "proddb",
				Username: "admin",
				Options:  map[string]string{"sslmode": "require"},
			},
			expected: "host=prod.example.com port=5432 dbname=proddb sslmode=require user=admin",
		},
		{
			name: "defaults",
			config: core.AdapterConfig{
				Database: "mydb",
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable",
		},
		{
			name: "password with blanks and quotes",
			config: core.AdapterConfig{
				Database: "mydb",
				Password: "it's secret",
			},
			expected: `host=localhost port=5432 dbname=mydb sslmode=disable password='it\'s secret'`,
		},
		{
			name: "application name",
			config: core.AdapterConfig{
				Database: "mydb",
				Options:  map[string]string{"application_name": "leaprecord"},
			},
			expected: "host=localhost port=5432 dbname=mydb sslmode=disable application_name=leaprecord",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPostgresDSN(tt.config))
		})
	}
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "pgx", driverName(core.AdapterConfig{}))
	assert.Equal(t, "postgres", driverName(core.AdapterConfig{Options: map[string]string{"driver": "pq"}}))
	assert.Equal(t, "pgx", driverName(core.AdapterConfig{Options: map[string]string{"driver": "pgx"}}))
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(nil)
	require.NoError(t, err)
	assert.Empty(t, p.SessionStatements())

	p, err = ParseParams(map[string]any{
		"search_path": []any{"app", "public"},
		"runtime": map[string]any{
			"statement_timeout": 5000,
			"application_name":  "o'clock",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SET search_path TO app, public",
		"SET application_name = 'o''clock'",
		"SET statement_timeout = '5000'",
	}, p.SessionStatements())

	_, err = ParseParams(map[string]any{"unknown": true})
	require.Error(t, err)
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	a := New(testutil.NewTestLogger(t))
	require.NoError(t, a.Attach(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return a, mock
}

func TestAdapter_Tables(t *testing.T) {
	a, mock := newMockAdapter(t)
	mock.ExpectQuery("FROM information_schema.tables").WillReturnRows(
		sqlmock.NewRows([]string{"table_schema", "table_name", "table_type"}).
			AddRow("information_schema", "sql_features", "BASE TABLE").
			AddRow("pg_catalog", "pg_class", "BASE TABLE").
			AddRow("public", "users", "BASE TABLE").
			AddRow("sales", "orders", "BASE TABLE"))

	d := pgdialect.New(dialect.Options{})
	names, err := a.Tables(context.Background(), func(t core.TableInfo) bool { return !d.IsSystemTable(t) })
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "sales.orders"}, names)
}

func TestAdapter_Indexes(t *testing.T) {
	a, mock := newMockAdapter(t)
	mock.ExpectQuery("FROM pg_class t").WithArgs("sales", "orders").WillReturnRows(
		sqlmock.NewRows([]string{"index_name", "is_unique", "column_name"}).
			AddRow("index_orders_on_number", true, "number").
			AddRow("index_orders_on_a_and_b", false, "a").
			AddRow("index_orders_on_a_and_b", false, "b"))

	got, err := a.Indexes(context.Background(), "sales.orders")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Unique)
	assert.Equal(t, []string{"a", "b"}, got[1].Columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_Columns(t *testing.T) {
	a, mock := newMockAdapter(t)
	mock.ExpectQuery("FROM pg_attribute attr").WithArgs("public", "users").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position", "column_default", "is_pk"}).
			AddRow("id", "integer", "NO", int64(1), "nextval('users_id_seq'::regclass)", true).
			AddRow("name", "character varying(40)", "YES", int64(2), "'anon'::character varying", false))

	cols, err := a.Columns(context.Background(), "users")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.True(t, cols[0].PrimaryKey)
	assert.Equal(t, "character varying(40)", cols[1].SQLType)
	assert.Equal(t, "'anon'::character varying", cols[1].DefaultExpr)
}

func TestAdapter_ConfiguredSchema(t *testing.T) {
	a, mock := newMockAdapter(t)
	a.Cfg.Schema = "app"
	mock.ExpectQuery("FROM pg_attribute attr").WithArgs("app", "users").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("id", "integer", "NO", int64(1)))

	_, err := a.Columns(context.Background(), "users")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_DialectName(t *testing.T) {
	assert.Equal(t, "postgres", New(nil).DialectName())
}
