package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogicalType_String(t *testing.T) {
	tests := []struct {
		kind LogicalType
		want string
	}{
		{Unspecified, "unspecified"},
		{String, "string"},
		{PrimaryKey, "primary_key"},
		{DateTime, "datetime"},
		{Timestamp, "timestamp"},
		{LogicalType(99), "LogicalType(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestParseLogicalType(t *testing.T) {
	for _, kind := range LogicalTypes() {
		got, err := ParseLogicalType(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	got, err := ParseLogicalType(" Primary-Key ")
	require.NoError(t, err)
	assert.Equal(t, PrimaryKey, got)

	_, err = ParseLogicalType("unspecified")
	assert.Error(t, err)
	_, err = ParseLogicalType("money")
	assert.Error(t, err)
}

func TestLogicalTypes_ExcludesUnspecified(t *testing.T) {
	kinds := LogicalTypes()
	assert.Len(t, kinds, 12)
	assert.NotContains(t, kinds, Unspecified)
}

func TestLogicalType_IsNumeric(t *testing.T) {
	assert.True(t, Integer.IsNumeric())
	assert.True(t, PrimaryKey.IsNumeric())
	assert.True(t, Decimal.IsNumeric())
	assert.False(t, String.IsNumeric())
	assert.False(t, Boolean.IsNumeric())
}

func TestSequenceRef(t *testing.T) {
	assert.True(t, SequenceRef{}.IsZero())
	assert.Equal(t, "orders_id_seq", SequenceRef{Name: "orders_id_seq"}.String())
	assert.Equal(t, "shop.orders_id_seq", SequenceRef{Schema: "shop", Name: "orders_id_seq"}.String())
	assert.Equal(t, SequenceRef{Schema: "shop", Name: "s"}, ParseSequenceRef("shop.s"))
	assert.Equal(t, SequenceRef{Name: "s"}, ParseSequenceRef("s"))
}

func TestColumnOptions_WithDefault(t *testing.T) {
	var opts ColumnOptions
	assert.Nil(t, opts.Default)

	cleared := opts.WithDefault(Null())
	require.NotNil(t, cleared.Default)
	assert.True(t, cleared.Default.IsNull())
	assert.Nil(t, opts.Default, "original options must not change")
}
