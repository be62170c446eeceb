package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the gorm connection pool.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a postgres connection pool configured from cfg and logging
// through zap. The connection is verified with a ping.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig, slowQuery time.Duration, log *zap.Logger) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.LogLevel),
			logger.WithSlowThreshold(slowQuery)),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	database := &Database{DB: db}
	if err := database.configurePool(cfg); err != nil {
		return nil, err
	}
	if err := database.Ping(ctx); err != nil {
		return nil, err
	}
	return database, nil
}

// NewDatabaseFromGorm wraps an already opened connection.
func NewDatabaseFromGorm(db *gorm.DB) *Database {
	return &Database{DB: db}
}

func (d *Database) configurePool(cfg config.DatabaseConfig) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	return nil
}

// Ping checks that the database is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Silent returns a session that does not log queries, for health probes.
func (d *Database) Silent() *gorm.DB {
	return d.DB.Session(&gorm.Session{Logger: gormlogger.Discard})
}
