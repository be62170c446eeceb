package persistence

import (
	"context"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant loads a sale with its items
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&sale).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &sale, nil
}

// FindForUpdate loads a sale with its items, locking the sale row. Payments
// and deliveries of the same sale serialize on this lock.
func (r *GormSaleRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := forUpdate(scoped(ctx, r.db, tenantID)).Where("id = ?", id).First(&sale).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if err := r.db.WithContext(ctx).Where("sale_id = ?", sale.ID).Order("created_at ASC").Find(&sale.Items).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindAllForTenant lists sales
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Sale, error) {
	var sales []trade.Sale
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&trade.Sale{}), filter, SaleSortFields, "")
	if clientID, ok := filter.Filters["client_id"]; ok {
		query = query.Where("client_id = ?", clientID)
	}
	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByQuotation finds the sale converted from a quotation
func (r *GormSaleRepository) FindByQuotation(ctx context.Context, tenantID, quotationID uuid.UUID) (*trade.Sale, error) {
	var sale trade.Sale
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("related_quotation_id = ?", quotationID).First(&sale).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &sale, nil
}

// Create inserts the sale and any items already attached
func (r *GormSaleRepository) Create(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// CreateItem inserts one sale line
func (r *GormSaleRepository) CreateItem(ctx context.Context, item *trade.SaleItem) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

// UpdateTotal persists total_amount only
func (r *GormSaleRepository) UpdateTotal(ctx context.Context, tenantID, saleID uuid.UUID, total decimal.Decimal) error {
	result := scoped(ctx, r.db, tenantID).
		Model(&trade.Sale{}).
		Where("id = ?", saleID).
		Updates(map[string]interface{}{"total_amount": total, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SoldQuantity sums the units of a product sold in a sale
func (r *GormSaleRepository) SoldQuantity(ctx context.Context, tenantID, saleID, productID uuid.UUID) (int64, error) {
	var sold int64
	err := r.db.WithContext(ctx).
		Model(&trade.SaleItem{}).
		Select("COALESCE(SUM(sale_items.quantity), 0)").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.tenant_id = ? AND sale_items.sale_id = ? AND sale_items.product_id = ?", tenantID, saleID, productID).
		Row().Scan(&sold)
	return sold, err
}

var _ trade.SaleRepository = (*GormSaleRepository)(nil)
