package persistence

import (
	"context"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocalRepository implements LocalRepository using GORM
type GormLocalRepository struct {
	db *gorm.DB
}

// NewGormLocalRepository creates a new GormLocalRepository
func NewGormLocalRepository(db *gorm.DB) *GormLocalRepository {
	return &GormLocalRepository{db: db}
}

// FindByIDForTenant finds a location by ID within a tenant
func (r *GormLocalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Local, error) {
	var local inventory.Local
	if err := scoped(ctx, r.db, tenantID).Where("id = ?", id).First(&local).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &local, nil
}

// FindByName finds a location by its unique name
func (r *GormLocalRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*inventory.Local, error) {
	var local inventory.Local
	if err := scoped(ctx, r.db, tenantID).Where("name = ?", strings.TrimSpace(name)).First(&local).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &local, nil
}

// FindAllForTenant lists locations
func (r *GormLocalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Local, error) {
	var locals []inventory.Local
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&inventory.Local{}), filter, NamedSortFields, "name")
	if err := query.Find(&locals).Error; err != nil {
		return nil, err
	}
	return locals, nil
}

// GetOrCreateByName inserts the location unless (tenant, name) already
// exists, then reads it back. The unique index makes concurrent callers
// converge on one row.
func (r *GormLocalRepository) GetOrCreateByName(ctx context.Context, tenantID uuid.UUID, name string) (*inventory.Local, error) {
	candidate, err := inventory.NewLocal(tenantID, name, "")
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(candidate).Error
	if err != nil {
		return nil, err
	}
	return r.FindByName(ctx, tenantID, candidate.Name)
}

// Save creates or updates a location
func (r *GormLocalRepository) Save(ctx context.Context, local *inventory.Local) error {
	return r.db.WithContext(ctx).Save(local).Error
}

var _ inventory.LocalRepository = (*GormLocalRepository)(nil)
