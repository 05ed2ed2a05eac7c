package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/hsqldb"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/mssql"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/sqlite"
)

func TestTargetConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		target    TargetConfig
		wantErr   bool
		errSubstr string
	}{
		{
			name:      "empty type",
			target:    TargetConfig{Type: ""},
			wantErr:   true,
			errSubstr: "target type is required",
		},
		{name: "valid sqlite", target: TargetConfig{Type: "sqlite"}},
		{name: "valid postgres uppercase", target: TargetConfig{Type: "Postgres"}},
		{name: "valid mysql", target: TargetConfig{Type: "mysql"}},
		{name: "valid mssql", target: TargetConfig{Type: "mssql"}},
		{
			name:      "unknown type oracle",
			target:    TargetConfig{Type: "oracle"},
			wantErr:   true,
			errSubstr: "unknown adapter type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetConfig_Validate_ErrorContainsAvailable(t *testing.T) {
	err := (&TargetConfig{Type: "invalid_db"}).Validate()
	var unknown *adapter.UnknownAdapterError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Available, "sqlite")
	assert.Contains(t, err.Error(), "leaprecord.yaml")
}

func TestDefaultSchemaForType(t *testing.T) {
	tests := []struct {
		dbType   string
		expected string
	}{
		{"postgres", "public"},
		{"postgresql", "public"},
		{"mssql", "dbo"},
		{"sqlite", "main"},
		{"hsqldb", "PUBLIC"},
		{"mysql", ""},
		{"snowflake", "main"},
		{"", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.dbType, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultSchemaForType(tt.dbType))
		})
	}
}

func TestApplyTargetDefaults(t *testing.T) {
	pg := &TargetConfig{Type: "POSTGRES"}
	ApplyTargetDefaults(pg)
	assert.Equal(t, "postgres", pg.Type)
	assert.Equal(t, 5432, pg.Port)
	assert.Equal(t, "public", pg.Schema)

	ms := &TargetConfig{Type: "mssql", Port: 14330}
	ApplyTargetDefaults(ms)
	assert.Equal(t, 14330, ms.Port)
	assert.Equal(t, "dbo", ms.Schema)

	lite := &TargetConfig{Type: "sqlite"}
	ApplyTargetDefaults(lite)
	assert.Equal(t, ":memory:", lite.Path)
	assert.Zero(t, lite.Port)

	ApplyTargetDefaults(nil)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_TWO", "value_two")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"multiple variables", "${TEST_VAR_ONE}/${TEST_VAR_TWO}", "value_one/value_two"},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"no variables", "plain string", "plain string"},
		{"mixed set and unset", "${TEST_VAR_ONE}:${UNSET_VAR}", "value_one:${UNSET_VAR}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}

func TestMergeTargetConfig(t *testing.T) {
	t.Run("nil base returns override", func(t *testing.T) {
		override := &TargetConfig{Type: "mysql"}
		assert.Same(t, override, MergeTargetConfig(nil, override))
	})

	t.Run("nil override returns base", func(t *testing.T) {
		base := &TargetConfig{Type: "mysql"}
		assert.Same(t, base, MergeTargetConfig(base, nil))
	})

	t.Run("override wins field by field", func(t *testing.T) {
		base := &TargetConfig{
			Type:     "postgres",
			Host:     "localhost",
			Database: "app",
			User:     "app",
			Options:  map[string]string{"sslmode": "disable", "application_name": "leaprecord"},
			Params:   map[string]any{"search_path": []string{"public"}},
		}
		override := &TargetConfig{
			Host:    "prod-db",
			Port:    6432,
			Options: map[string]string{"sslmode": "require"},
		}
		merged := MergeTargetConfig(base, override)
		assert.Equal(t, "postgres", merged.Type)
		assert.Equal(t, "prod-db", merged.Host)
		assert.Equal(t, 6432, merged.Port)
		assert.Equal(t, "app", merged.Database)
		assert.Equal(t, map[string]string{"sslmode": "require", "application_name": "leaprecord"}, merged.Options)
		assert.Contains(t, merged.Params, "search_path")

		// base is not mutated
		assert.Equal(t, "disable", base.Options["sslmode"])
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", "", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "sqlite", cfg.Target.Type)
	assert.Equal(t, ":memory:", cfg.Target.Path)
	assert.Equal(t, "main", cfg.Target.Schema)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, ".leaprecord/history.db", cfg.History)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoad_HistoryDisabled(t *testing.T) {
	path := writeConfig(t, "history: \"\"\n")

	cfg, err := Load(path, "", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.History)
}

func TestLoad_FindsConfigUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("target:\n  type: mysql\n"), 0o600))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := Load("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Target.Type)
	assert.Equal(t, 3306, cfg.Target.Port)
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), cfg.File)
}

const postgresConfig = `
target:
  type: postgres
  host: localhost
  database: app
  user: app
  password: ${TEST_PG_PASSWORD}
  options:
    sslmode: disable
  params:
    search_path: [app, public]
timezone: Europe/Berlin
log_level: info
environments:
  prod:
    target:
      host: prod-db
      options:
        sslmode: require
`

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, postgresConfig)
	t.Setenv("TEST_PG_PASSWORD", "s3cret")
	t.Setenv("LEAPRECORD_TARGET_HOST", "env-db")
	t.Setenv("LEAPRECORD_LOG_LEVEL", "debug")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("output", "", "")
	flags.String("schema", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "6543", "--output", "json"}))

	cfg, err := Load(path, "", flags)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "env-db", cfg.Target.Host, "env beats file")
	assert.Equal(t, 6543, cfg.Target.Port, "flag beats default")
	assert.Equal(t, "public", cfg.Target.Schema, "unset flag is ignored")
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "s3cret", cfg.Target.Password)
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())

	ac := cfg.Target.AdapterConfig()
	assert.Equal(t, "postgres", ac.Type)
	assert.Equal(t, "app", ac.Username)
	assert.Equal(t, "disable", ac.Option("sslmode", ""))
	assert.Contains(t, ac.Params, "search_path")
}

func TestLoad_TargetEnvironment(t *testing.T) {
	path := writeConfig(t, postgresConfig)

	cfg, err := Load(path, "prod", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Target.Type)
	assert.Equal(t, "prod-db", cfg.Target.Host)
	assert.Equal(t, "require", cfg.Target.Options["sslmode"])
	assert.Equal(t, "app", cfg.Target.Database)

	_, err = Load(path, "staging", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target environment "staging"`)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"unknown adapter", "target:\n  type: oracle\n", "unknown adapter type"},
		{"bad timezone", "timezone: Mars/Olympus\n", "invalid timezone"},
		{"bad output", "output: xml\n", "invalid output format"},
		{"malformed yaml", "target: [\n", "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), "", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(t.Context()))

	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(t.Context(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestFromContext(t *testing.T) {
	assert.Nil(t, FromContext(t.Context()))

	cfg := &Config{Timezone: "UTC"}
	assert.Same(t, cfg, FromContext(WithConfig(t.Context(), cfg)))
}
