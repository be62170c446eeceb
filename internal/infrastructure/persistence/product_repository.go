package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByIDForTenant loads a product with its design and colors
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	err := scoped(ctx, r.db, tenantID).
		Preload("Design").
		Preload("Colors").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &product, nil
}

// FindAllForTenant lists products
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&catalog.Product{}), filter, ProductSortFields, "name")
	if designID, ok := filter.Filters["design_id"]; ok {
		query = query.Where("design_id = ?", designID)
	}
	if err := query.Preload("Colors").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsBySKU checks whether the SKU is taken within the tenant
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	var count int64
	if err := scoped(ctx, r.db, tenantID).Model(&catalog.Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates the product row and replaces its color set
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Save(product).Error; err != nil {
		return err
	}
	colors := db.Model(product).Association("Colors")
	if len(product.Colors) == 0 {
		return colors.Clear()
	}
	return colors.Replace(product.Colors)
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
