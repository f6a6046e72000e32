package database

import (
	"fmt"
	"strconv"
	"time"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/HariStrange/drive-Vault/internal/infrastructure/repositories"
)

// Options tunes the connection pool and session settings
type Options struct {
	Schema           string
	MaxOpenConns     int
	StatementTimeout time.Duration
}

// Open creates a new database connection with production-ready settings
func Open(dsn string, opts Options) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	if opts.StatementTimeout > 0 {
		connConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(opts.StatementTimeout.Milliseconds(), 10)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns / 2)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), Config(opts.Schema, logger.Warn))
}

// Config returns the gorm settings shared by the service and its tests
func Config(schemaName string, level logger.LogLevel) *gorm.Config {
	naming := schema.NamingStrategy{}
	if schemaName != "" {
		naming.TablePrefix = schemaName + "."
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		NamingStrategy: naming,
		TranslateError: true,
	}
}

// EnsureSchema creates the Postgres schema holding the service tables
func EnsureSchema(db *gorm.DB, name string) error {
	if name == "" || db.Dialector.Name() != "postgres" {
		return nil
	}
	return db.Exec("CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{name}.Sanitize()).Error
}

// AutoMigrate performs database migration for all required tables
// This includes the record tables and Casbin policy tables for RBAC
func AutoMigrate(db *gorm.DB) error {
	for _, model := range repositories.Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// The adapter creates the casbin_rule table if it doesn't exist
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}
	return nil
}
