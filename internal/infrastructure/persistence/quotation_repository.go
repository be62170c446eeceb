package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByIDForTenant loads a quotation with its items
func (r *GormQuotationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quotation, error) {
	var q trade.Quotation
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&q).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &q, nil
}

// FindForUpdate loads a quotation with its items, locking the quotation row
func (r *GormQuotationRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Quotation, error) {
	var q trade.Quotation
	if err := forUpdate(scoped(ctx, r.db, tenantID)).Where("id = ?", id).First(&q).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if err := r.db.WithContext(ctx).Where("quotation_id = ?", q.ID).Order("created_at ASC").Find(&q.Items).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// FindAllForTenant lists quotations
func (r *GormQuotationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trade.Quotation, error) {
	var quotations []trade.Quotation
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&trade.Quotation{}), filter, QuotationSortFields, "number")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&quotations).Error; err != nil {
		return nil, err
	}
	return quotations, nil
}

// NextSequence returns the next per-tenant quotation number
func (r *GormQuotationRepository) NextSequence(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := scoped(ctx, r.db, tenantID).Model(&trade.Quotation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Create inserts the quotation and its items
func (r *GormQuotationRepository) Create(ctx context.Context, q *trade.Quotation) error {
	return r.db.WithContext(ctx).Create(q).Error
}

// UpdateStatus persists the status only
func (r *GormQuotationRepository) UpdateStatus(ctx context.Context, q *trade.Quotation) error {
	result := scoped(ctx, r.db, q.TenantID).
		Model(&trade.Quotation{}).
		Where("id = ?", q.ID).
		Updates(map[string]interface{}{"status": q.Status, "updated_at": q.UpdatedAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ trade.QuotationRepository = (*GormQuotationRepository)(nil)
