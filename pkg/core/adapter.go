package core

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// Option returns the named driver option, or def when it is unset.
func (c AdapterConfig) Option(name, def string) string {
	if v, ok := c.Options[name]; ok && v != "" {
		return v
	}
	return def
}

// TableInfo describes a table returned by introspection.
type TableInfo struct {
	Schema string
	Name   string
	// Type is the backend's table classification, e.g. "BASE TABLE" or "SYSTEM TABLE".
	Type string
}

// IndexInfo describes an index on a table.
type IndexInfo struct {
	Name    string
	Table   string
	Unique  bool
	Columns []string
}

// Column represents a column in a database table.
type Column struct {
	Name       string
	SQLType    string
	Type       LogicalType
	Limit      int
	Nullable   bool
	PrimaryKey bool
	Position   int
	// DefaultExpr is the default as stored by the backend, before interpretation.
	DefaultExpr string
	Default     Value
}

// RowSet is the result of executing a statement.
type RowSet struct {
	Columns      []string
	Rows         [][]RawValue
	RowsAffected int64
}

// Len returns the number of rows.
func (r *RowSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// First returns the first column of the first row, or a NULL raw value.
func (r *RowSet) First() RawValue {
	if r.Len() == 0 || len(r.Rows[0]) == 0 {
		return NullRaw()
	}
	return r.Rows[0][0]
}

// Get returns the value of column name in row i.
func (r *RowSet) Get(i int, name string) (RawValue, bool) {
	if r == nil || i < 0 || i >= len(r.Rows) {
		return NullRaw(), false
	}
	for j, c := range r.Columns {
		if c == name && j < len(r.Rows[i]) {
			return r.Rows[i][j], true
		}
	}
	return NullRaw(), false
}
