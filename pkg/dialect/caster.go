package dialect

import (
	"encoding/hex"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

var nullToken = regexp.MustCompile(`(?i)^\s*(null)?\s*$`)

// IsNullRaw reports whether raw is NULL, blank, or the literal "null" in any case.
func IsNullRaw(raw core.RawValue) bool {
	return !raw.Valid() || nullToken.MatchString(raw.String())
}

// ParseBoolToken reads a boolean-like token.
func ParseBoolToken(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "1", "y", "yes", "on":
		return true, true
	case "f", "false", "0", "n", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// BinaryDecoder turns a raw binary column value into bytes.
type BinaryDecoder func(raw core.RawValue) []byte

// PassthroughBinary returns the raw bytes unchanged.
func PassthroughBinary(raw core.RawValue) []byte { return raw.Bytes() }

var hexPair = regexp.MustCompile(`[0-9A-Fa-f]{2}`)

// HexPairBinary decodes every pair of hex digits, ignoring other characters.
func HexPairBinary(raw core.RawValue) []byte {
	pairs := hexPair.FindAllString(raw.String(), -1)
	out := make([]byte, 0, len(pairs))
	for _, p := range pairs {
		b, _ := strconv.ParseUint(p, 16, 8)
		out = append(out, byte(b))
	}
	return out
}

// EscapedHexBinary decodes the "\x<hex>" text form and passes anything else through.
func EscapedHexBinary(raw core.RawValue) []byte {
	s := raw.String()
	if strings.HasPrefix(s, `\x`) {
		if b, err := hex.DecodeString(s[2:]); err == nil {
			return b
		}
	}
	return raw.Bytes()
}

// BaseCaster implements Caster with the generic rules and a binary hook.
type BaseCaster struct {
	Location *time.Location
	Binary   BinaryDecoder
}

// Cast converts raw into a normalized value for a column of the given kind.
func (c *BaseCaster) Cast(raw core.RawValue, kind core.LogicalType) core.Value {
	if IsNullRaw(raw) {
		return core.Null()
	}
	s := raw.String()

	switch kind {
	case core.Integer, core.PrimaryKey:
		return castInteger(strings.TrimSpace(s))
	case core.Float:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return core.Null()
		}
		return core.FloatValue(f)
	case core.Decimal:
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return core.Null()
		}
		return core.DecimalValue(d)
	case core.Boolean:
		b, ok := ParseBoolToken(s)
		if !ok {
			return core.Null()
		}
		return core.BoolValue(b)
	case core.Binary:
		decode := c.Binary
		if decode == nil {
			decode = PassthroughBinary
		}
		return core.BytesValue(decode(raw))
	case core.Date, core.Time, core.DateTime, core.Timestamp:
		return c.castTemporal(s, kind)
	default:
		return core.StringValue(s)
	}
}

func (c *BaseCaster) castTemporal(s string, kind core.LogicalType) core.Value {
	t, hasDate, ok := ParseDateTime(s, c.Location)
	if !ok {
		return core.Null()
	}
	switch kind {
	case core.Date:
		return core.DateValue(t)
	case core.Time:
		return core.TimeValue(t)
	case core.DateTime:
		if hasDate && IsMidnight(t) {
			return core.DateValue(t)
		}
		return core.DateTimeValue(t)
	default:
		return core.DateTimeValue(t)
	}
}

func castInteger(s string) core.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return core.IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) &&
		f >= math.MinInt64 && f < math.MaxInt64 {
		return core.IntValue(int64(f))
	}
	if b, ok := ParseBoolToken(s); ok {
		if b {
			return core.IntValue(1)
		}
		return core.IntValue(0)
	}
	return core.Null()
}
