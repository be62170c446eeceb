package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// inventoryKey is the conflict target of the (tenant, product, local) unique index
var inventoryKey = []clause.Column{{Name: "tenant_id"}, {Name: "product_id"}, {Name: "local_id"}}

// GormInventoryItemRepository implements InventoryItemRepository using GORM.
// Quantity changes are single SQL statements evaluated by the database, so
// two concurrent writers can never overwrite each other's delta.
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

func (r *GormInventoryItemRepository) byKey(ctx context.Context, tenantID, productID, localID uuid.UUID) *gorm.DB {
	return scoped(ctx, r.db, tenantID).
		Model(&inventory.InventoryItem{}).
		Where("product_id = ? AND local_id = ?", productID, localID)
}

// Find returns the stock row for (product, local)
func (r *GormInventoryItemRepository) Find(ctx context.Context, tenantID, productID, localID uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.byKey(ctx, tenantID, productID, localID).First(&item).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &item, nil
}

// QuantityOf returns the stock at a location, zero when there is no row
func (r *GormInventoryItemRepository) QuantityOf(ctx context.Context, tenantID, productID, localID uuid.UUID) (int64, error) {
	item, err := r.Find(ctx, tenantID, productID, localID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return item.Quantity, nil
}

// GetOrCreate inserts a zero row unless one exists, then reads it back
func (r *GormInventoryItemRepository) GetOrCreate(ctx context.Context, tenantID, productID, localID uuid.UUID) (*inventory.InventoryItem, error) {
	candidate, err := inventory.NewInventoryItem(tenantID, productID, localID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: inventoryKey, DoNothing: true}).
		Create(candidate).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, tenantID, productID, localID)
}

// Increase adds qty to the row, creating it when absent:
// INSERT ... ON CONFLICT (tenant_id, product_id, local_id) DO UPDATE SET quantity = quantity + qty
func (r *GormInventoryItemRepository) Increase(ctx context.Context, tenantID, productID, localID uuid.UUID, qty int64) error {
	candidate, err := inventory.NewInventoryItem(tenantID, productID, localID)
	if err != nil {
		return err
	}
	candidate.Quantity = qty
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: inventoryKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("inventory_items.quantity + ?", qty),
				"updated_at": time.Now(),
			}),
		}).
		Create(candidate).Error
}

// DecreaseIfAvailable subtracts qty with a guarded UPDATE ... WHERE quantity >= qty.
// Zero affected rows means the stock was short (or the row is absent).
func (r *GormInventoryItemRepository) DecreaseIfAvailable(ctx context.Context, tenantID, productID, localID uuid.UUID, qty int64) (bool, error) {
	result := r.byKey(ctx, tenantID, productID, localID).
		Where("quantity >= ?", qty).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByProduct lists the stock of a product across locations
func (r *GormInventoryItemRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	if err := scoped(ctx, r.db, tenantID).Where("product_id = ?", productID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByLocal lists the stock held at a location
func (r *GormInventoryItemRepository) FindByLocal(ctx context.Context, tenantID, localID uuid.UUID, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := applyFilter(
		scoped(ctx, r.db, tenantID).Model(&inventory.InventoryItem{}).Where("local_id = ?", localID),
		filter, InventorySortFields, "",
	)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
