package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint
	Name string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestRegisterDBTracing(t *testing.T) {
	recorder := installRecorder(t)
	db := openSQLite(t)

	err := RegisterDBTracing(db, DBTracingConfig{
		Enabled:         true,
		SlowQueryThresh: time.Hour,
		DBName:          "fanaticos",
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, db.WithContext(context.Background()).Create(&tracedRow{Name: "Fábrica"}).Error)
	var rows []tracedRow
	require.NoError(t, db.WithContext(context.Background()).Find(&rows).Error)

	assert.Len(t, rows, 1)
	assert.GreaterOrEqual(t, len(recorder.Ended()), 2)
}

func TestRegisterDBTracing_Disabled(t *testing.T) {
	recorder := installRecorder(t)
	db := openSQLite(t)

	require.NoError(t, RegisterDBTracing(db, DBTracingConfig{Enabled: false}, zap.NewNop()))
	require.NoError(t, db.Create(&tracedRow{Name: "Local"}).Error)
	assert.Empty(t, recorder.Ended())
}
