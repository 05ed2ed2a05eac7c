package sqlite

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds SQLite-specific configuration.
// Parsed from core.AdapterConfig.Params using mapstructure.
type Params struct {
	// BusyTimeout in milliseconds, applied as PRAGMA busy_timeout.
	BusyTimeout int `mapstructure:"busy_timeout"`

	// ForeignKeys toggles PRAGMA foreign_keys; nil leaves the default.
	ForeignKeys *bool `mapstructure:"foreign_keys"`

	// Pragmas applied verbatim after connecting (e.g., journal_mode: wal).
	Pragmas map[string]string `mapstructure:"pragmas"`
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
		return nil, fmt.Errorf("invalid sqlite params: %w", err)
	}
	return p, nil
}

// PragmaStatements returns the PRAGMA statements for p, in a stable order.
func (p *Params) PragmaStatements() []string {
	var stmts []string
	if p.BusyTimeout > 0 {
		stmts = append(stmts, fmt.Sprintf("PRAGMA busy_timeout = %d", p.BusyTimeout))
	}
	if p.ForeignKeys != nil {
		v := "OFF"
		if *p.ForeignKeys {
			v = "ON"
		}
		stmts = append(stmts, "PRAGMA foreign_keys = "+v)
	}
	keys := make([]string, 0, len(p.Pragmas))
	for k := range p.Pragmas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stmts = append(stmts, fmt.Sprintf("PRAGMA %s = %s", k, p.Pragmas[k]))
	}
	return stmts
}
