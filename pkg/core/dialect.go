package core

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (PostgreSQL, DuckDB).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (HSQLDB).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (MySQL on unix).
	NormCaseSensitive
	// NormCaseInsensitive compares identifiers without folding (SQLite, MSSQL).
	NormCaseInsensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// DialectConfig holds the static configuration for a SQL dialect.
// This is pure data; the behaviour lives in pkg/dialect.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "hsqldb", "postgres")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// DefaultSchema is the default schema name ("public" for PostgreSQL, "PUBLIC" for HSQLDB)
	DefaultSchema string

	// Keywords are reserved words that always need identifier quoting.
	Keywords []string
}
