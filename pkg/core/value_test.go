package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Accessors(t *testing.T) {
	s, ok := StringValue("abc").Str()
	assert.True(t, ok)
	assert.Equal(t, "abc", s)

	_, ok = StringValue("abc").Int()
	assert.False(t, ok)

	i, ok := IntValue(42).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), i)

	d, ok := DecimalValue(decimal.RequireFromString("12.50")).Decimal()
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromFloat(12.5)))

	assert.True(t, Null().IsNull())
	assert.Equal(t, KindNull, Value{}.Kind())
}

func TestValue_BytesAreCopied(t *testing.T) {
	src := []byte{1, 2, 3}
	v := BytesValue(src)
	src[0] = 9

	got, ok := v.Bytes()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, _ := v.Bytes()
	assert.Equal(t, []byte{1, 2, 3}, again)
}

func TestDateValue_TruncatesTime(t *testing.T) {
	v := DateValue(time.Date(2024, 3, 10, 13, 45, 0, 0, time.UTC))
	got, ok := v.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "2024-03-10", v.String())
}

func TestValue_Equal(t *testing.T) {
	utc := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cet := utc.In(time.FixedZone("CET", 3600))

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null(), Null(), true},
		{"strings", StringValue("a"), StringValue("a"), true},
		{"different kinds", IntValue(1), FloatValue(1), false},
		{"decimals by value", DecimalValue(decimal.RequireFromString("1.50")), DecimalValue(decimal.RequireFromString("1.5")), true},
		{"bytes", BytesValue([]byte("x")), BytesValue([]byte("x")), true},
		{"same instant other zone", DateTimeValue(utc), DateTimeValue(cet), true},
		{"date vs datetime", DateValue(utc), DateTimeValue(utc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestRawFromDriver(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  string
		valid bool
	}{
		{"nil", nil, "", false},
		{"bytes", []byte("abc"), "abc", true},
		{"string", "abc", "abc", true},
		{"int64", int64(-7), "-7", true},
		{"float64", 1.5, "1.5", true},
		{"true", true, "t", true},
		{"false", false, "f", true},
		{"time", time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC), "2024-03-10 00:00:01+00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawFromDriver(tt.in)
			assert.Equal(t, tt.valid, raw.Valid())
			assert.Equal(t, tt.want, raw.String())
		})
	}
}

func TestRowSet_Helpers(t *testing.T) {
	var empty *RowSet
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.First().Valid())

	rs := &RowSet{
		Columns: []string{"id", "name"},
		Rows:    [][]RawValue{{Raw("1"), Raw("alice")}},
	}
	assert.Equal(t, "1", rs.First().String())

	name, ok := rs.Get(0, "name")
	assert.True(t, ok)
	assert.Equal(t, "alice", name.String())

	_, ok = rs.Get(0, "missing")
	assert.False(t, ok)
	_, ok = rs.Get(3, "id")
	assert.False(t, ok)
}
