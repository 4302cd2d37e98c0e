package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/entities"
	"github.com/mrlokans/kelime/internal/logging"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the configured backend and brings the schema up to date.
// AutoMigrate only adds missing tables, columns and indexes; it never drops.
func NewDatabase(cfg config.Database, log *logging.Logger) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logging.NewNop()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Word{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database initialized", "driver", cfg.Driver, "target", describeTarget(cfg))

	return &Database{DB: db}, nil
}

// NewSQLiteDatabase is a shorthand for tools and tests that only need a file path.
func NewSQLiteDatabase(path string) (*Database, error) {
	return NewDatabase(config.Database{Driver: config.DriverSQLite, Path: path}, nil)
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite database path is empty")
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres DSN is empty")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds a busy timeout so concurrent request handlers wait for the
// write lock instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000"
}

func describeTarget(cfg config.Database) string {
	if cfg.Driver == config.DriverPostgres {
		return "postgres"
	}
	return cfg.Path
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection pool can reach the database.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// gormWriter routes gorm's SQL log lines into zap.
type gormWriter struct {
	log *logging.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.SugaredLogger.Debugf(format, args...)
}

func newGormLogger(log *logging.Logger) gormLogger.Interface {
	return gormLogger.New(gormWriter{log: log.With("component", "gorm")}, gormLogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
