package persistence

import (
	"context"
	"errors"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateNotFound maps gorm.ErrRecordNotFound to shared.ErrNotFound
func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// forUpdate adds SELECT ... FOR UPDATE. Dialects without row locks
// (sqlite) drop the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// scoped returns a context-bound session filtered by tenant
func scoped(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) *gorm.DB {
	return db.WithContext(ctx).Scopes(tenant.Scope(tenantID))
}

// gormReferenceRepository implements the find/list/save shape shared by
// the simple tenant-owned tables
type gormReferenceRepository[T any] struct {
	db           *gorm.DB
	sortable     map[string]bool
	searchColumn string
}

func newReferenceRepository[T any](db *gorm.DB) gormReferenceRepository[T] {
	return gormReferenceRepository[T]{db: db, sortable: NamedSortFields, searchColumn: "name"}
}

// FindByIDForTenant finds a row by ID within a tenant
func (r *gormReferenceRepository[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := scoped(ctx, r.db, tenantID).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &entity, nil
}

// FindAllForTenant lists the tenant's rows
func (r *gormReferenceRepository[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(new(T)), filter, r.sortable, r.searchColumn)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates the row, never its associations
func (r *gormReferenceRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}
