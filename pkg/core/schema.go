package core

import "strings"

// ColumnTypeSpec is the native type a dialect uses for a logical kind.
type ColumnTypeSpec struct {
	Name      string
	Limit     int // 0 means no default limit
	Precision int
	Scale     int
}

// ColumnOptions are the per-column options supplied with a schema operation.
type ColumnOptions struct {
	Limit     int
	Precision int
	Scale     int
	NotNull   bool
	// Default is nil when no default was requested. A pointer to Null() clears it.
	Default *Value
}

// WithDefault returns a copy of o with the default set to v.
func (o ColumnOptions) WithDefault(v Value) ColumnOptions {
	o.Default = &v
	return o
}

// SequenceRef identifies a backend sequence object.
type SequenceRef struct {
	Schema string
	Name   string
}

// IsZero reports whether the reference is unknown.
func (s SequenceRef) IsZero() bool { return s.Name == "" }

// String renders the reference as schema.name, or just name when unqualified.
func (s SequenceRef) String() string {
	if s.Schema == "" {
		return s.Name
	}
	return s.Schema + "." + s.Name
}

// ParseSequenceRef splits a dotted sequence name into schema and name parts.
func ParseSequenceRef(s string) SequenceRef {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return SequenceRef{Schema: s[:i], Name: s[i+1:]}
	}
	return SequenceRef{Name: s}
}
