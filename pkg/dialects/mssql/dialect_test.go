package mssql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/pkg/core"
	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

func TestRegistered(t *testing.T) {
	d, err := dialect.New("sqlserver", dialect.Options{})
	require.NoError(t, err)
	assert.Equal(t, "mssql", d.Name())
}

func TestTypes(t *testing.T) {
	d := New(dialect.Options{})
	got, err := d.TypeToSQL(core.String, core.ColumnOptions{})
	require.NoError(t, err)
	assert.Equal(t, "nvarchar(255)", got)
	got, err = d.TypeToSQL(core.Text, core.ColumnOptions{})
	require.NoError(t, err)
	assert.Equal(t, "nvarchar(max)", got)

	assert.Equal(t, core.Text, d.SimplifiedType("varchar(max)"))
	assert.Equal(t, core.String, d.SimplifiedType("varchar(50)"))
	assert.Equal(t, core.Binary, d.SimplifiedType("varbinary(max)"))
	assert.Equal(t, core.Decimal, d.SimplifiedType("money"))
	assert.Equal(t, core.String, d.SimplifiedType("uniqueidentifier"))
	assert.Equal(t, core.DateTime, d.SimplifiedType("datetime2(7)"))
}

func TestQuote(t *testing.T) {
	d := New(dialect.Options{})
	assert.Equal(t, "1", d.Quote(core.BoolValue(true), core.Boolean))
	assert.Equal(t, "0xcafe", d.Quote(core.BytesValue([]byte{0xca, 0xfe}), core.Binary))
	assert.Equal(t, "7", d.Quote(core.StringValue("7"), core.PrimaryKey))
	assert.Equal(t, "[order]", d.QuoteIdentifier("order"))
	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))
}

func TestDDL(t *testing.T) {
	d := New(dialect.Options{})

	p, err := d.AddColumn("users", "age", core.Integer, core.ColumnOptions{}.WithDefault(core.IntValue(0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALTER TABLE users ADD age int CONSTRAINT DF_users_age DEFAULT 0"}, p.Statements)

	p, err = d.ChangeColumn("users", "age", core.Integer, core.ColumnOptions{Limit: 8, NotNull: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"ALTER TABLE users ALTER COLUMN age bigint NOT NULL"}, p.Statements)

	p, err = d.ChangeColumnDefault("users", "age", core.IntValue(5))
	require.NoError(t, err)
	assert.True(t, p.Atomic)
	assert.Equal(t, []string{
		"IF OBJECT_ID('DF_users_age', 'D') IS NOT NULL ALTER TABLE users DROP CONSTRAINT DF_users_age",
		"ALTER TABLE users ADD CONSTRAINT DF_users_age DEFAULT 5 FOR age",
	}, p.Statements)

	p, err = d.ChangeColumnDefault("users", "age", core.Null())
	require.NoError(t, err)
	assert.Len(t, p.Statements, 1)

	p, err = d.RemoveColumn("users", "age")
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE users DROP COLUMN age", p.Statements[1])

	p, err = d.RenameColumn("users", "name", "full_name")
	require.NoError(t, err)
	assert.Equal(t, []string{"EXEC sp_rename 'users.name', 'full_name', 'COLUMN'"}, p.Statements)

	p, err = d.RenameTable("users", "order")
	require.NoError(t, err)
	assert.Equal(t, []string{"EXEC sp_rename 'users', 'order'"}, p.Statements)

	p, err = d.RemoveIndex("users", dialect.IndexRef{Name: "ix_email"})
	require.NoError(t, err)
	assert.Equal(t, []string{"DROP INDEX ix_email ON users"}, p.Statements)
}

func TestApplyLimitOffset(t *testing.T) {
	d := New(dialect.Options{})
	tests := []struct {
		name          string
		sql           string
		limit, offset int
		want          string
	}{
		{"none", "SELECT * FROM t", 0, 0, "SELECT * FROM t"},
		{"top", "SELECT * FROM t", 10, 0, "SELECT TOP 10 * FROM t"},
		{"top distinct", "select distinct a from t", 3, 0, "SELECT DISTINCT TOP 3 a from t"},
		{"offset adds order", "SELECT * FROM t", 10, 20, "SELECT * FROM t ORDER BY (SELECT NULL) OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY"},
		{"offset keeps order", "SELECT * FROM t ORDER BY id", 0, 5, "SELECT * FROM t ORDER BY id OFFSET 5 ROWS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.ApplyLimitOffset(tt.sql, tt.limit, tt.offset))
		})
	}
}

func TestIdentity(t *testing.T) {
	d := New(dialect.Options{})
	assert.Equal(t, dialect.IdentityDirect, d.IdentityKind())
	assert.Equal(t, "SELECT IDENT_CURRENT('orders')", d.IdentityQuery("orders"))
}

func TestColumnDefault(t *testing.T) {
	tests := []struct {
		expr string
		want core.RawValue
	}{
		{"((0))", core.Raw("0")},
		{"(N'abc')", core.Raw("abc")},
		{"('it''s')", core.Raw("it's")},
		{"(NULL)", core.NullRaw()},
		{"(getdate())", core.NullRaw()},
		{"(newid())", core.NullRaw()},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, ColumnDefault(tt.expr))
		})
	}
}

func TestIsSystemTable(t *testing.T) {
	d := New(dialect.Options{})
	assert.True(t, d.IsSystemTable(core.TableInfo{Schema: "sys", Name: "objects"}))
	assert.False(t, d.IsSystemTable(core.TableInfo{Schema: "dbo", Name: "users"}))
}
