package persistence

import (
	"context"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMaterialLotRepository implements MaterialLotRepository using GORM
type GormMaterialLotRepository struct {
	db *gorm.DB
}

// NewGormMaterialLotRepository creates a new GormMaterialLotRepository
func NewGormMaterialLotRepository(db *gorm.DB) *GormMaterialLotRepository {
	return &GormMaterialLotRepository{db: db}
}

// FindByIDForTenant finds a lot by ID within a tenant
func (r *GormMaterialLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.MaterialLot, error) {
	var lot inventory.MaterialLot
	if err := scoped(ctx, r.db, tenantID).Where("id = ?", id).First(&lot).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &lot, nil
}

// FindByRawMaterial lists the lots of a raw material, cheapest first
func (r *GormMaterialLotRepository) FindByRawMaterial(ctx context.Context, tenantID, rawMaterialID uuid.UUID) ([]inventory.MaterialLot, error) {
	var lots []inventory.MaterialLot
	err := scoped(ctx, r.db, tenantID).
		Where("raw_material_id = ?", rawMaterialID).
		Order("cost ASC").
		Order("created_at ASC").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}
	return lots, nil
}

// FindCheapestCovering selects FOR UPDATE the lowest-cost lot whose stock
// alone covers qty. Ties on cost go to the oldest lot.
func (r *GormMaterialLotRepository) FindCheapestCovering(ctx context.Context, tenantID, rawMaterialID uuid.UUID, qty decimal.Decimal) (*inventory.MaterialLot, error) {
	var lot inventory.MaterialLot
	err := forUpdate(scoped(ctx, r.db, tenantID)).
		Where("raw_material_id = ? AND current_stock >= ?", rawMaterialID, qty).
		Order("cost ASC").
		Order("created_at ASC").
		First(&lot).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &lot, nil
}

// LargestStock returns the biggest single-lot stock of the raw material
func (r *GormMaterialLotRepository) LargestStock(ctx context.Context, tenantID, rawMaterialID uuid.UUID) (decimal.Decimal, error) {
	var largest decimal.NullDecimal
	err := scoped(ctx, r.db, tenantID).
		Model(&inventory.MaterialLot{}).
		Select("MAX(current_stock)").
		Where("raw_material_id = ?", rawMaterialID).
		Row().Scan(&largest)
	if err != nil {
		return decimal.Zero, err
	}
	if !largest.Valid {
		return decimal.Zero, nil
	}
	return largest.Decimal, nil
}

// ApplyDelta adds delta to the lot stock with a guarded
// UPDATE ... WHERE current_stock + delta >= 0. It reports false when the
// lot exists but would turn negative.
func (r *GormMaterialLotRepository) ApplyDelta(ctx context.Context, tenantID, lotID uuid.UUID, delta decimal.Decimal) (bool, error) {
	query := scoped(ctx, r.db, tenantID).Model(&inventory.MaterialLot{}).Where("id = ?", lotID)
	if delta.IsNegative() {
		query = query.Where("current_stock >= ?", delta.Neg())
	}
	result := query.Updates(map[string]interface{}{
		"current_stock": gorm.Expr("current_stock + ?", delta),
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	if _, err := r.FindByIDForTenant(ctx, tenantID, lotID); err != nil {
		return false, err
	}
	return false, nil
}

// Save creates or updates a lot
func (r *GormMaterialLotRepository) Save(ctx context.Context, lot *inventory.MaterialLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}

var _ inventory.MaterialLotRepository = (*GormMaterialLotRepository)(nil)

// GormStockAdjustmentRepository implements StockAdjustmentRepository using GORM
type GormStockAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormStockAdjustmentRepository creates a new GormStockAdjustmentRepository
func NewGormStockAdjustmentRepository(db *gorm.DB) *GormStockAdjustmentRepository {
	return &GormStockAdjustmentRepository{db: db}
}

// Save records an adjustment
func (r *GormStockAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Save(adjustment).Error
}

// FindAllForTenant lists adjustments, newest first by default
func (r *GormStockAdjustmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	var adjustments []inventory.StockAdjustment
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&inventory.StockAdjustment{}), filter, AdjustmentSortFields, "")
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

var _ inventory.StockAdjustmentRepository = (*GormStockAdjustmentRepository)(nil)
