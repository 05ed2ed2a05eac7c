package core

import (
	"fmt"
	"strings"
)

// LogicalType is the backend-neutral column kind used by the mapping engine.
type LogicalType int

const (
	// Unspecified means no column kind was supplied (e.g. quoting a bare value).
	Unspecified LogicalType = iota
	String
	Text
	Integer
	PrimaryKey
	Float
	Decimal
	Boolean
	Binary
	Date
	Time
	DateTime
	Timestamp
)

var logicalTypeNames = [...]string{
	Unspecified: "unspecified",
	String:      "string",
	Text:        "text",
	Integer:     "integer",
	PrimaryKey:  "primary_key",
	Float:       "float",
	Decimal:     "decimal",
	Boolean:     "boolean",
	Binary:      "binary",
	Date:        "date",
	Time:        "time",
	DateTime:    "datetime",
	Timestamp:   "timestamp",
}

// String returns the snake_case name of the kind.
func (t LogicalType) String() string {
	if t < 0 || int(t) >= len(logicalTypeNames) {
		return fmt.Sprintf("LogicalType(%d)", int(t))
	}
	return logicalTypeNames[t]
}

// IsNumeric reports whether values of this kind are rendered as bare numbers.
func (t LogicalType) IsNumeric() bool {
	switch t {
	case Integer, PrimaryKey, Float, Decimal:
		return true
	default:
		return false
	}
}

// LogicalTypes returns every concrete kind, excluding Unspecified.
func LogicalTypes() []LogicalType {
	kinds := make([]LogicalType, 0, len(logicalTypeNames)-1)
	for k := String; int(k) < len(logicalTypeNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseLogicalType parses a kind name such as "datetime" or "primary_key".
// Matching is case-insensitive and accepts dashes in place of underscores.
func ParseLogicalType(s string) (LogicalType, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range logicalTypeNames {
		if n == name && LogicalType(i) != Unspecified {
			return LogicalType(i), nil
		}
	}
	return Unspecified, fmt.Errorf("unknown logical type %q", s)
}
