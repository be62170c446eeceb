//go:build integration

// Package integration runs the application services against a real
// PostgreSQL started with testcontainers and migrated with the project's
// SQL migrations.
package integration

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ejarriada/Fanaticos/internal/application/identity"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/migration"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated PostgreSQL database owned by one test
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

// NewTestDB starts a PostgreSQL container and applies every migration.
// The container is terminated when the test ends.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fanaticos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, sqlDB := connectToDatabase(t, dsn)
	tdb := &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn, t: t}
	t.Cleanup(tdb.Close)

	tdb.Migrate()
	return tdb
}

// Migrate applies all pending migrations
func (tdb *TestDB) Migrate() {
	tdb.t.Helper()
	m := tdb.migrator()
	require.NoError(tdb.t, m.Up(), "Failed to run migrations")
}

// Rollback reverts every migration
func (tdb *TestDB) Rollback() {
	tdb.t.Helper()
	m := tdb.migrator()
	require.NoError(tdb.t, m.Down(), "Failed to roll back migrations")
}

func (tdb *TestDB) migrator() *migration.Migrator {
	tdb.t.Helper()
	path := findMigrationsPath()
	require.NotEmpty(tdb.t, path, "Could not find migrations directory")

	m, err := migration.NewFromURL(tdb.DSN, path, zaptest.NewLogger(tdb.t))
	require.NoError(tdb.t, err, "Failed to create migrator")
	tdb.t.Cleanup(func() { _ = m.Close() })
	return m
}

// Scope returns a transaction scope over the database
func (tdb *TestDB) Scope() *persistence.GormTransactionScope {
	return persistence.NewGormTransactionScope(tdb.DB)
}

// CreateTenant stores a tenant through the tenant service and returns its ID
func (tdb *TestDB) CreateTenant(name string) uuid.UUID {
	tdb.t.Helper()
	svc := identity.NewTenantService(tdb.Scope(), cache.NewInMemoryTenantCache(time.Minute), zaptest.NewLogger(tdb.t))
	tenant, err := svc.Create(context.Background(), identity.CreateTenantRequest{Name: name})
	require.NoError(tdb.t, err, "Failed to create tenant %s", name)
	return tenant.ID
}

// TableNames lists the tables of the public schema except the migration
// bookkeeping table
func (tdb *TestDB) TableNames() []string {
	tdb.t.Helper()
	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
		ORDER BY tablename
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to get table names")
	return tables
}

// Close closes the connection and terminates the container
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("Warning: Failed to terminate container: %v", err)
		}
	}
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), gormConfig)
	require.NoError(t, err, "Failed to connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err, "Failed to get underlying SQL DB")

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, sqlDB
}

// findMigrationsPath walks up from this file to the repository's
// migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, "migrations")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return ""
}
