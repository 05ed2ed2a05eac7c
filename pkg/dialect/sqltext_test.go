package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadToken(t *testing.T) {
	tests := map[string]string{
		"SELECT 1":                        "select",
		"  \n select * from t":            "select",
		"(select 1) union (select 2)":     "select",
		"-- comment\nINSERT INTO t":       "insert",
		"/* hint */ with x as (select 1)": "with",
		"PRAGMA table_info(t)":            "pragma",
		"update t set a=1":                "update",
		"":                                "",
		"-- only a comment":               "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, HeadToken(in))
		})
	}
}

func TestInsertTable(t *testing.T) {
	assert.Equal(t, "orders", InsertTable("INSERT INTO orders (name) VALUES ('x')"))
	assert.Equal(t, "orders", InsertTable("insert into orders(name) values ('x')"))
	assert.Equal(t, "shop.orders", InsertTable("INSERT INTO shop.orders VALUES (1)"))
	assert.Equal(t, "", InsertTable("INSERT INTO"))
}

func TestSplitSelect(t *testing.T) {
	rest, ok := SplitSelect("  SELECT * FROM t")
	assert.True(t, ok)
	assert.Equal(t, "* FROM t", rest)

	_, ok = SplitSelect("selected")
	assert.False(t, ok)
	_, ok = SplitSelect("with x as (select 1) select * from x")
	assert.False(t, ok)
}

func TestHasOrderBy(t *testing.T) {
	assert.True(t, HasOrderBy("select * from t order by id"))
	assert.True(t, HasOrderBy("SELECT * FROM t\nORDER\tBY id"))
	assert.False(t, HasOrderBy("select * from (select * from t order by id) x"))
	assert.False(t, HasOrderBy("select reorder from t"))
	assert.False(t, HasOrderBy("select * from orders"))
}
