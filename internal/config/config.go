package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		App
		Global
		Database
		CORS
		Tasks
		TrashPurge
	}

	HTTP struct {
		Port     int32
		Host     string
		ReadOnly bool // Reject every mutating request with 403
	}
	App struct {
		Env string // "development" switches zap and gin to their verbose modes
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver string // "sqlite" or "postgres"
		Path   string // sqlite file
		DSN    string // postgres connection string
	}
	CORS struct {
		AllowOrigins []string
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		DatabasePath    string // Empty means "<database>-tasks.db" next to the sqlite file
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	TrashPurge struct {
		Enabled   bool
		Schedule  string        // Cron format: "0 3 * * *" = daily at 03:00
		Retention time.Duration // Soft-deleted words older than this are removed for good
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("read_only", false)
	v.SetDefault("app_env", "production")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("cors_allow_origins", "*")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("tasks_database_path", "")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Trash purge defaults
	v.SetDefault("trash_purge_enabled", false)
	v.SetDefault("trash_purge_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("trash_retention", "720h")           // 30 days

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		App: App{
			Env: v.GetString("APP_ENV"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		CORS: CORS{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		TrashPurge: TrashPurge{
			Enabled:   v.GetBool("TRASH_PURGE_ENABLED"),
			Schedule:  v.GetString("TRASH_PURGE_SCHEDULE"),
			Retention: v.GetDuration("TRASH_RETENTION"),
		},
	}
}

// Validate checks the settings that would otherwise fail late, after the
// server has already started listening.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want %q or %q)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}

	if c.Database.Driver == DriverPostgres && c.Tasks.Enabled && c.Tasks.DatabasePath == "" {
		return fmt.Errorf("TASKS_DATABASE_PATH is required when tasks run next to a postgres database")
	}

	if c.TrashPurge.Enabled {
		if !c.Tasks.Enabled {
			return fmt.Errorf("TRASH_PURGE_ENABLED requires TASKS_ENABLED")
		}
		if err := ValidateCronSchedule(c.TrashPurge.Schedule); err != nil {
			return fmt.Errorf("invalid TRASH_PURGE_SCHEDULE %q: %w", c.TrashPurge.Schedule, err)
		}
		if c.TrashPurge.Retention <= 0 {
			return fmt.Errorf("TRASH_RETENTION must be positive")
		}
	}
	return nil
}

// ValidateCronSchedule parses a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
