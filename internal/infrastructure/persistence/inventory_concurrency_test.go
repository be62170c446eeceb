package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPostgres opens a GORM postgres session over sqlmock so the tests
// can assert the exact statements issued for stock mutations
func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestInventoryIncrease_IsSingleUpsert(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormInventoryItemRepository(db)

	mock.ExpectExec(`INSERT INTO "inventory_items" .* ON CONFLICT \("tenant_id","product_id","local_id"\) DO UPDATE SET "quantity"=inventory_items\.quantity \+ \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Increase(context.Background(), uuid.New(), uuid.New(), uuid.New(), 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryDecrease_GuardedUpdate(t *testing.T) {
	t.Run("enough stock", func(t *testing.T) {
		db, mock, mockDB := newMockPostgres(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		mock.ExpectExec(`UPDATE "inventory_items" SET "quantity"=quantity - \$\d+.*WHERE .*quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.DecreaseIfAvailable(context.Background(), uuid.New(), uuid.New(), uuid.New(), 3)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short stock touches no row", func(t *testing.T) {
		db, mock, mockDB := newMockPostgres(t)
		defer mockDB.Close()
		repo := NewGormInventoryItemRepository(db)

		mock.ExpectExec(`UPDATE "inventory_items" SET "quantity"=quantity - \$\d+.*WHERE .*quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.DecreaseIfAvailable(context.Background(), uuid.New(), uuid.New(), uuid.New(), 3)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaterialLotSelection_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormMaterialLotRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "material_lots" WHERE .*raw_material_id = \$\d+ AND current_stock >= \$\d+.*"material_lots"\."tenant_id" = \$\d+.* ORDER BY cost ASC,\s*created_at ASC.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindCheapestCovering(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(150))

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDesignFindForUpdate_LocksRow(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormDesignRepository(db)

	mock.ExpectQuery(`SELECT "id" FROM "designs" WHERE .*id = \$\d+.*"designs"\."tenant_id" = \$\d+.* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindForUpdate(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialLotApplyDelta_GuardsNegativeDelta(t *testing.T) {
	db, mock, mockDB := newMockPostgres(t)
	defer mockDB.Close()
	repo := NewGormMaterialLotRepository(db)

	mock.ExpectExec(`UPDATE "material_lots" SET "current_stock"=current_stock \+ \$\d+.*WHERE .*current_stock >= \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.ApplyDelta(context.Background(), uuid.New(), uuid.New(), decimal.NewFromInt(-10))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
