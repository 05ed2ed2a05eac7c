package mysql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/internal/testutil"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

func TestBuildMySQLDSN(t *testing.T) {
	dsn := buildMySQLDSN(core.AdapterConfig{
		Host:     "db.example.com",
		Port:     3307,
		Database: "shop",
		Username: "app",
		Password: "p@ss",
		Options:  map[string]string{"autocommit": "1", "driver": "ignored"},
	})

	parsed, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "p@ss", parsed.Passwd)
	assert.Equal(t, "db.example.com:3307", parsed.Addr)
	assert.Equal(t, "shop", parsed.DBName)
	assert.Equal(t, map[string]string{"autocommit": "1"}, parsed.Params)
}

func TestBuildMySQLDSN_Defaults(t *testing.T) {
	parsed, err := gomysql.ParseDSN(buildMySQLDSN(core.AdapterConfig{Database: "shop"}))
	require.NoError(t, err)
	assert.Equal(t, "localhost:3306", parsed.Addr)
	assert.Equal(t, "tcp", parsed.Net)
}

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	a := New(testutil.NewTestLogger(t))
	a.Cfg.Database = "shop"
	require.NoError(t, a.Attach(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })
	return a, mock
}

func TestAdapter_Introspection(t *testing.T) {
	a, mock := newMockAdapter(t)
	ctx := context.Background()

	mock.ExpectQuery("FROM information_schema.tables").WillReturnRows(
		sqlmock.NewRows([]string{"table_schema", "table_name", "table_type"}).
			AddRow("shop", "orders", "BASE TABLE"))
	names, err := a.Tables(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, names)

	mock.ExpectQuery("FROM information_schema.statistics").WithArgs("shop", "orders").WillReturnRows(
		sqlmock.NewRows([]string{"index_name", "is_unique", "column_name"}).
			AddRow("index_orders_on_number", int64(1), "number"))
	idx, err := a.Indexes(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []core.IndexInfo{{Name: "index_orders_on_number", Table: "orders", Unique: true, Columns: []string{"number"}}}, idx)

	mock.ExpectQuery("FROM information_schema.columns").WithArgs("shop", "orders").WillReturnRows(
		sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position", "column_default", "is_pk"}).
			AddRow("id", "int", "NO", int64(1), nil, int64(1)).
			AddRow("paid", "tinyint(1)", "NO", int64(2), "0", int64(0)))
	cols, err := a.Columns(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.True(t, cols[0].PrimaryKey)
	assert.Equal(t, "tinyint(1)", cols[1].SQLType)
	assert.Equal(t, "0", cols[1].DefaultExpr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_LastInsertIDSession(t *testing.T) {
	a, mock := newMockAdapter(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT LAST_INSERT_ID").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	rs, err := a.Execute(ctx, "INSERT INTO orders (number) VALUES ('A1')", "insert")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rs.RowsAffected)

	rs, err = a.SelectOne(ctx, "SELECT LAST_INSERT_ID()", "identity")
	require.NoError(t, err)
	v, _ := rs.Get(0, "id")
	assert.Equal(t, "42", v.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
