package config

import (
	"strings"

	"github.com/leapstack-labs/leaprecord/pkg/dialect"
)

// Default configuration values.
const (
	DefaultTargetType = "sqlite"
	DefaultTargetPath = ":memory:"
	DefaultTimezone   = "UTC"
	DefaultLogLevel   = "warn"
	DefaultOutput     = "auto"
	DefaultHistory    = ".leaprecord/history.db"
)

// defaultPorts are the well-known ports of network targets.
var defaultPorts = map[string]int{
	"postgres": 5432,
	"mysql":    3306,
	"mssql":    1433,
}

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "main" as fallback.
// MySQL has no schema apart from the database and yields "".
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType, dialect.Options{}); ok {
		return d.Config().DefaultSchema
	}
	return "main"
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}
	t.Type = strings.ToLower(t.Type)

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}
	if t.Port == 0 {
		t.Port = defaultPorts[t.Type]
	}
	if (t.Type == "sqlite" || t.Type == "duckdb") && t.Path == "" && t.Database == "" {
		t.Path = DefaultTargetPath
	}
}
