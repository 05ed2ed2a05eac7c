// Package core defines the shared vocabulary of the leaprecord dialect layer.
//
// This package contains:
//   - Logical column kinds (LogicalType) shared with the mapping engine
//   - Normalized runtime values (Value) and raw driver values (RawValue, RowSet)
//   - Schema descriptions (ColumnTypeSpec, ColumnOptions, SequenceRef, TableInfo, IndexInfo, Column)
//   - Connection and identifier configuration (AdapterConfig, IdentifierConfig)
//   - Typed errors shared by dialects, adapters and connections
//
// The Golden Rule: pkg/core imports ONLY the standard library and shopspring/decimal.
// All other packages depend on core, not the reverse.
package core
