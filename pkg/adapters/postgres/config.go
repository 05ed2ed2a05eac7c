package postgres

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// Params holds PostgreSQL-specific configuration.
// Parsed from core.AdapterConfig.Params using mapstructure.
type Params struct {
	// SearchPath is applied with SET search_path after connecting.
	SearchPath []string `mapstructure:"search_path"`

	// Runtime parameters applied with SET at session level
	// (e.g., statement_timeout, application_name).
	Runtime map[string]string `mapstructure:"runtime"`
}

// ParseParams decodes adapter params into Params.
func ParseParams(raw map[string]any) (*Params, error) {
	p := &Params{}
	if len(raw) == 0 {
		return p, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid postgres params: %w", err)
	}
	return p, nil
}

// SessionStatements returns the SET statements for p, in a stable order.
func (p *Params) SessionStatements() []string {
	var stmts []string
	if len(p.SearchPath) > 0 {
		stmts = append(stmts, "SET search_path TO "+strings.Join(p.SearchPath, ", "))
	}
	keys := make([]string, 0, len(p.Runtime))
	for k := range p.Runtime {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stmts = append(stmts, fmt.Sprintf("SET %s = '%s'", k, strings.ReplaceAll(p.Runtime[k], "'", "''")))
	}
	return stmts
}

// driverName picks the database/sql driver. pgx is the default; options.driver
// set to "pq" or "postgres" selects lib/pq.
func driverName(cfg core.AdapterConfig) string {
	switch strings.ToLower(cfg.Option("driver", "pgx")) {
	case "pq", "postgres", "lib/pq":
		return "postgres"
	default:
		return "pgx"
	}
}

// buildPostgresDSN constructs a PostgreSQL key=value connection string.
func buildPostgresDSN(cfg core.AdapterConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := cfg.Option("sslmode", "disable")

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		dsnValue(host), port, dsnValue(cfg.Database), dsnValue(sslmode))

	if cfg.Username != "" {
		dsn += " user=" + dsnValue(cfg.Username)
	}
	if cfg.Password != "" {
		dsn += " password=" + dsnValue(cfg.Password)
	}
	if name := cfg.Option("application_name", ""); name != "" {
		dsn += " application_name=" + dsnValue(name)
	}

	return dsn
}

// dsnValue quotes a value containing blanks or quotes.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}
