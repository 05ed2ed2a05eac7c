// Package config provides configuration loading for leaprecord.
//
// Configuration is layered with koanf: built-in defaults, then leaprecord.yaml,
// then LEAPRECORD_ environment variables, then explicitly set CLI flags.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // postgres, mysql, mssql, sqlite, duckdb, hsqldb

	// File-based databases (SQLite, DuckDB)
	Path string `koanf:"path"`

	// Network databases
	Database string `koanf:"database"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (pragmas, settings, runtime parameters)
	Params map[string]any `koanf:"params"`
}

// AdapterConfig converts the target into the adapter connection config.
// File-based targets fall back to Database when Path is unset.
func (t *TargetConfig) AdapterConfig() core.AdapterConfig {
	path := t.Path
	if path == "" {
		path = t.Database
	}
	return core.AdapterConfig{
		Type:     t.Type,
		Path:     path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}

// EnvConfig holds environment-specific overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// Config holds all configuration options.
type Config struct {
	Target       *TargetConfig        `koanf:"target"`
	Timezone     string               `koanf:"timezone"`
	LogLevel     string               `koanf:"log_level"`
	OutputFormat string               `koanf:"output"`
	Environment  string               `koanf:"environment"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// History is the database that journals applied schema changes.
	// Empty disables the journal.
	History string `koanf:"history"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Level maps log_level onto a slog level. Unknown names mean warn.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
