package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/identity"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var t identity.Tenant
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

// FindByName finds a tenant by its unique name
func (r *GormTenantRepository) FindByName(ctx context.Context, name string) (*identity.Tenant, error) {
	var t identity.Tenant
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

// FindAll lists tenants
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	var tenants []identity.Tenant
	query := applyFilter(r.db.WithContext(ctx).Model(&identity.Tenant{}), filter, TenantSortFields, "name")
	if err := query.Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

// ExistsByID checks if a tenant exists
func (r *GormTenantRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Tenant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByName checks if a tenant name is taken
func (r *GormTenantRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&identity.Tenant{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, t *identity.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

var _ identity.TenantRepository = (*GormTenantRepository)(nil)
