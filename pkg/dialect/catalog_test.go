package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

func testCatalog() *Catalog {
	return &Catalog{
		Dialect: "test",
		Types: map[core.LogicalType]core.ColumnTypeSpec{
			core.PrimaryKey: {Name: "serial PRIMARY KEY"},
			core.String:     {Name: "varchar", Limit: 255},
			core.Text:       {Name: "text"},
			core.Integer:    {Name: "integer"},
			core.Float:      {Name: "float"},
			core.Decimal:    {Name: "decimal", Precision: 10, Scale: 2},
			core.Boolean:    {Name: "boolean"},
			core.Binary:     {Name: "blob"},
			core.Date:       {Name: "date"},
			core.Time:       {Name: "time"},
			core.DateTime:   {Name: "timestamp"},
			core.Timestamp:  {Name: "timestamp"},
		},
		Integers: IntegerWidths{Small: "smallint", Standard: "integer", Wide: "bigint"},
		Rules:    []TypeRule{Rule(`^longvarchar`, core.Text)},
	}
}

func TestCatalog_Validate(t *testing.T) {
	c := testCatalog()
	require.NoError(t, c.Validate())

	delete(c.Types, core.Binary)
	c.Integers.Wide = ""
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnmappedType)
	assert.Contains(t, err.Error(), "binary")
	assert.Contains(t, err.Error(), "integer widths")
}

func TestCatalog_TypeToSQL(t *testing.T) {
	c := testCatalog()
	tests := []struct {
		name string
		kind core.LogicalType
		opts core.ColumnOptions
		want string
	}{
		{"primary key keyword", core.PrimaryKey, core.ColumnOptions{Limit: 8}, "serial PRIMARY KEY"},
		{"integer unset", core.Integer, core.ColumnOptions{}, "integer"},
		{"integer 4", core.Integer, core.ColumnOptions{Limit: 4}, "integer"},
		{"integer 3", core.Integer, core.ColumnOptions{Limit: 3}, "smallint"},
		{"integer 1", core.Integer, core.ColumnOptions{Limit: 1}, "smallint"},
		{"integer negative is unset", core.Integer, core.ColumnOptions{Limit: -2}, "integer"},
		{"integer 9", core.Integer, core.ColumnOptions{Limit: 9}, "bigint"},
		{"string default limit", core.String, core.ColumnOptions{}, "varchar(255)"},
		{"string explicit limit", core.String, core.ColumnOptions{Limit: 40}, "varchar(40)"},
		{"text no limit", core.Text, core.ColumnOptions{}, "text"},
		{"decimal default", core.Decimal, core.ColumnOptions{}, "decimal(10,2)"},
		{"decimal precision only", core.Decimal, core.ColumnOptions{Precision: 5}, "decimal(5)"},
		{"decimal precision scale", core.Decimal, core.ColumnOptions{Precision: 12, Scale: 4}, "decimal(12,4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.TypeToSQL(tt.kind, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalog_UnmappedType(t *testing.T) {
	c := testCatalog()
	_, err := c.TypeToSQL(core.Unspecified, core.ColumnOptions{})
	var unmapped *core.UnmappedTypeError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "test", unmapped.Dialect)
	assert.Equal(t, core.Unspecified, unmapped.Type)
}

func TestCatalog_SimplifiedType(t *testing.T) {
	c := testCatalog()
	tests := map[string]core.LogicalType{
		"LONGVARCHAR(0)":              core.Text,
		"varchar(255)":                core.String,
		"character varying":           core.String,
		"INTEGER":                     core.Integer,
		"bigint":                      core.Integer,
		"int8":                        core.Integer,
		"bigserial":                   core.Integer,
		"double precision":            core.Float,
		"numeric(10,2)":               core.Decimal,
		"bytea":                       core.Binary,
		"timestamp without time zone": core.Timestamp,
		"datetime":                    core.DateTime,
		"time":                        core.Time,
		"date":                        core.Date,
		"boolean":                     core.Boolean,
		"interval":                    core.String,
	}
	for sqlType, want := range tests {
		t.Run(sqlType, func(t *testing.T) {
			assert.Equal(t, want, c.SimplifiedType(sqlType))
		})
	}
}

func TestCatalog_ExtractLimit(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, 255, c.ExtractLimit("varchar(255)"))
	assert.Equal(t, 10, c.ExtractLimit("numeric( 10, 2)"))
	assert.Equal(t, 0, c.ExtractLimit("LONGVARCHAR(0)"))
	assert.Equal(t, 0, c.ExtractLimit("text"))
}
