package persistence

import (
	"context"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	gormReferenceRepository[catalog.Category]
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{newReferenceRepository[catalog.Category](db)}
}

// GormSizeRepository implements SizeRepository using GORM
type GormSizeRepository struct {
	gormReferenceRepository[catalog.Size]
}

// NewGormSizeRepository creates a new GormSizeRepository
func NewGormSizeRepository(db *gorm.DB) *GormSizeRepository {
	return &GormSizeRepository{newReferenceRepository[catalog.Size](db)}
}

// GormColorRepository implements ColorRepository using GORM
type GormColorRepository struct {
	gormReferenceRepository[catalog.Color]
}

// NewGormColorRepository creates a new GormColorRepository
func NewGormColorRepository(db *gorm.DB) *GormColorRepository {
	return &GormColorRepository{newReferenceRepository[catalog.Color](db)}
}

// FindByIDs loads the given colors of the tenant
func (r *GormColorRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Color, error) {
	if len(ids) == 0 {
		return []catalog.Color{}, nil
	}
	var colors []catalog.Color
	if err := scoped(ctx, r.db, tenantID).Where("id IN ?", ids).Find(&colors).Error; err != nil {
		return nil, err
	}
	return colors, nil
}

// GormProcessRepository implements ProcessRepository using GORM
type GormProcessRepository struct {
	gormReferenceRepository[catalog.Process]
}

// NewGormProcessRepository creates a new GormProcessRepository
func NewGormProcessRepository(db *gorm.DB) *GormProcessRepository {
	return &GormProcessRepository{newReferenceRepository[catalog.Process](db)}
}

// FindByName finds a process by exact (trimmed) name
func (r *GormProcessRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*catalog.Process, error) {
	var p catalog.Process
	if err := scoped(ctx, r.db, tenantID).Where("name = ?", strings.TrimSpace(name)).First(&p).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &p, nil
}

// GormRawMaterialRepository implements RawMaterialRepository using GORM
type GormRawMaterialRepository struct {
	gormReferenceRepository[catalog.RawMaterial]
}

// NewGormRawMaterialRepository creates a new GormRawMaterialRepository
func NewGormRawMaterialRepository(db *gorm.DB) *GormRawMaterialRepository {
	return &GormRawMaterialRepository{newReferenceRepository[catalog.RawMaterial](db)}
}

var (
	_ catalog.CategoryRepository    = (*GormCategoryRepository)(nil)
	_ catalog.SizeRepository        = (*GormSizeRepository)(nil)
	_ catalog.ColorRepository       = (*GormColorRepository)(nil)
	_ catalog.ProcessRepository     = (*GormProcessRepository)(nil)
	_ catalog.RawMaterialRepository = (*GormRawMaterialRepository)(nil)
)
