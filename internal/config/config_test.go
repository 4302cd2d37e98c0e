package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(DefaultPort), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.False(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.Tasks.Enabled)
	assert.False(t, cfg.TrashPurge.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.TrashPurge.Schedule)
	assert.Equal(t, 720*time.Hour, cfg.TrashPurge.Retention)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("READ_ONLY", "true")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://localhost/words")
	t.Setenv("TASKS_DATABASE_PATH", "/tmp/tasks.db")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, http://127.0.0.1:5173 ,")
	t.Setenv("TRASH_RETENTION", "48h")

	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.True(t, cfg.HTTP.ReadOnly)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/words", cfg.Database.DSN)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 48*time.Hour, cfg.TrashPurge.Retention)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: Database{Driver: DriverSQLite, Path: "./words.db"},
			Tasks:    Tasks{Enabled: true},
			TrashPurge: TrashPurge{
				Enabled:   true,
				Schedule:  "0 3 * * *",
				Retention: time.Hour,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "unsupported DATABASE_DRIVER",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "DATABASE_PATH",
		},
		{
			name: "postgres without dsn",
			mutate: func(c *Config) {
				c.Database.Driver = DriverPostgres
			},
			wantErr: "DATABASE_DSN",
		},
		{
			name: "postgres without tasks path",
			mutate: func(c *Config) {
				c.Database.Driver = DriverPostgres
				c.Database.DSN = "postgres://localhost/words"
			},
			wantErr: "TASKS_DATABASE_PATH",
		},
		{
			name:    "bad schedule",
			mutate:  func(c *Config) { c.TrashPurge.Schedule = "every day" },
			wantErr: "invalid TRASH_PURGE_SCHEDULE",
		},
		{
			name:    "purge without tasks",
			mutate:  func(c *Config) { c.Tasks.Enabled = false },
			wantErr: "requires TASKS_ENABLED",
		},
		{
			name:    "zero retention",
			mutate:  func(c *Config) { c.TrashPurge.Retention = 0 },
			wantErr: "TRASH_RETENTION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("* * *"))
}
