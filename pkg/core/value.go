package core

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInteger
	KindFloat
	KindDecimal
	KindBoolean
	KindBytes
	KindDate
	KindTime
	KindDateTime
)

// String returns the name of the variant.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindBoolean:
		return "boolean"
	case KindBytes:
		return "bytes"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Value is a normalized runtime value. Values are immutable once built.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	d    decimal.Decimal
	b    bool
	raw  []byte
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// StringValue wraps s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// IntValue wraps i.
func IntValue(i int64) Value { return Value{kind: KindInteger, i: i} }

// FloatValue wraps f.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// DecimalValue wraps d.
func DecimalValue(d decimal.Decimal) Value { return Value{kind: KindDecimal, d: d} }

// BoolValue wraps b.
func BoolValue(b bool) Value { return Value{kind: KindBoolean, b: b} }

// BytesValue copies b into a new value.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(nonNil(b))}
}

// DateValue keeps only the calendar date of t, in t's location.
func DateValue(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// TimeValue holds a time of day; the date part is kept as parsed.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// DateTimeValue holds a full timestamp.
func DateTimeValue(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Int returns the integer payload.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInteger }

// Float returns the float payload.
func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

// Decimal returns the decimal payload.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.d, v.kind == KindDecimal }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBoolean }

// Bytes returns a copy of the byte payload.
func (v Value) Bytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.raw), true
}

// Time returns the payload of Date, Time and DateTime values.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate, KindTime, KindDateTime:
		return v.t, true
	default:
		return time.Time{}, false
	}
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindDecimal:
		return v.d.Equal(o.d)
	case KindBoolean:
		return v.b == o.b
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	default:
		return v.t.Equal(o.t)
	}
}

// String renders the value for logs and CLI output. It is not SQL.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindString:
		return v.s
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDecimal:
		return v.d.String()
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindBytes:
		return fmt.Sprintf("%x", v.raw)
	case KindDate:
		return v.t.Format(time.DateOnly)
	case KindTime:
		return v.t.Format("15:04:05.999999999")
	default:
		return v.t.Format("2006-01-02 15:04:05.999999999 -07:00")
	}
}

// RawValue is a value as returned by the backend driver, before casting.
// An invalid RawValue stands for SQL NULL.
type RawValue struct {
	b     []byte
	valid bool
}

// Raw wraps a driver string.
func Raw(s string) RawValue { return RawValue{b: []byte(s), valid: true} }

// RawBytes copies a driver byte sequence.
func RawBytes(b []byte) RawValue { return RawValue{b: bytes.Clone(nonNil(b)), valid: true} }

// NullRaw is the raw form of SQL NULL.
func NullRaw() RawValue { return RawValue{} }

// RawFromDriver converts a database/sql scan result into a RawValue.
func RawFromDriver(v any) RawValue {
	switch x := v.(type) {
	case nil:
		return NullRaw()
	case []byte:
		return RawBytes(x)
	case string:
		return Raw(x)
	case int64:
		return Raw(strconv.FormatInt(x, 10))
	case int32:
		return Raw(strconv.FormatInt(int64(x), 10))
	case int:
		return Raw(strconv.Itoa(x))
	case float64:
		return Raw(strconv.FormatFloat(x, 'g', -1, 64))
	case float32:
		return Raw(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case bool:
		if x {
			return Raw("t")
		}
		return Raw("f")
	case time.Time:
		return Raw(x.Format("2006-01-02 15:04:05.999999999-07:00"))
	case fmt.Stringer:
		return Raw(x.String())
	default:
		return Raw(fmt.Sprint(x))
	}
}

// Valid reports whether the raw value is non-NULL.
func (r RawValue) Valid() bool { return r.valid }

// String returns the raw text; NULL renders as the empty string.
func (r RawValue) String() string { return string(r.b) }

// Bytes returns a copy of the raw bytes.
func (r RawValue) Bytes() []byte { return bytes.Clone(r.b) }

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
