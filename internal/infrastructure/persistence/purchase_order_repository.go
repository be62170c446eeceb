package persistence

import (
	"context"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByIDForTenant loads a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var po trade.PurchaseOrder
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&po).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &po, nil
}

// FindForUpdate loads a purchase order with its items, locking the order row
func (r *GormPurchaseOrderRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var po trade.PurchaseOrder
	if err := forUpdate(scoped(ctx, r.db, tenantID)).Where("id = ?", id).First(&po).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if err := r.db.WithContext(ctx).Where("purchase_order_id = ?", po.ID).Order("created_at ASC").Find(&po.Items).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// FindAllForTenant lists purchase orders
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&trade.PurchaseOrder{}), filter, PurchaseOrderSortFields, "")
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// NextSequence returns max(number)+1 within the tenant
func (r *GormPurchaseOrderRepository) NextSequence(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var last int64
	err := scoped(ctx, r.db, tenantID).
		Model(&trade.PurchaseOrder{}).
		Select("COALESCE(MAX(number), 0)").
		Row().Scan(&last)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// Create inserts the order and its items
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// IncrementPaid adds amount to paid_amount in one statement and returns
// the new paid amount
func (r *GormPurchaseOrderRepository) IncrementPaid(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	result := scoped(ctx, r.db, tenantID).
		Model(&trade.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"paid_amount": gorm.Expr("paid_amount + ?", amount),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, shared.ErrNotFound
	}
	var paid decimal.Decimal
	err := scoped(ctx, r.db, tenantID).
		Model(&trade.PurchaseOrder{}).
		Select("paid_amount").
		Where("id = ?", id).
		Row().Scan(&paid)
	if err != nil {
		return decimal.Zero, err
	}
	return paid, nil
}

// UpdateStatus persists status and received_at
func (r *GormPurchaseOrderRepository) UpdateStatus(ctx context.Context, po *trade.PurchaseOrder) error {
	result := scoped(ctx, r.db, po.TenantID).
		Model(&trade.PurchaseOrder{}).
		Where("id = ?", po.ID).
		Updates(map[string]interface{}{
			"status":      po.Status,
			"received_at": po.ReceivedAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
