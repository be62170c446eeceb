package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ProductionOrderRepository using GORM
type GormProductionOrderRepository struct {
	db *gorm.DB
}

// NewGormProductionOrderRepository creates a new GormProductionOrderRepository
func NewGormProductionOrderRepository(db *gorm.DB) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{db: db}
}

// FindByIDForTenant loads an order with its items
func (r *GormProductionOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &order, nil
}

// FindForUpdate loads an order with its items, locking the order row so
// two completions of the same order serialize
func (r *GormProductionOrderRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*production.ProductionOrder, error) {
	var order production.ProductionOrder
	if err := forUpdate(scoped(ctx, r.db, tenantID)).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translateNotFound(err)
	}
	if err := r.db.WithContext(ctx).Where("production_order_id = ?", order.ID).Order("created_at ASC").Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant lists production orders
func (r *GormProductionOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	query := applyFilter(scoped(ctx, r.db, tenantID).Model(&production.ProductionOrder{}), filter, ProductionOrderSortFields, "team")
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByOrderNote lists the orders spawned by an order note
func (r *GormProductionOrderRepository) FindByOrderNote(ctx context.Context, tenantID, orderNoteID uuid.UUID) ([]production.ProductionOrder, error) {
	var orders []production.ProductionOrder
	err := scoped(ctx, r.db, tenantID).
		Preload("Items").
		Where("order_note_id = ?", orderNoteID).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts the order and its items
func (r *GormProductionOrderRepository) Create(ctx context.Context, order *production.ProductionOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateProgress persists status and current step
func (r *GormProductionOrderRepository) UpdateProgress(ctx context.Context, order *production.ProductionOrder) error {
	result := scoped(ctx, r.db, order.TenantID).
		Model(&production.ProductionOrder{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":               order.Status,
			"current_process_id":   order.CurrentProcessID,
			"current_process_name": order.CurrentProcessName,
			"updated_at":           order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ production.ProductionOrderRepository = (*GormProductionOrderRepository)(nil)

// GormOrderNoteRepository implements OrderNoteRepository using GORM
type GormOrderNoteRepository struct {
	db *gorm.DB
}

// NewGormOrderNoteRepository creates a new GormOrderNoteRepository
func NewGormOrderNoteRepository(db *gorm.DB) *GormOrderNoteRepository {
	return &GormOrderNoteRepository{db: db}
}

// FindByIDForTenant finds an order note
func (r *GormOrderNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.OrderNote, error) {
	var note production.OrderNote
	if err := scoped(ctx, r.db, tenantID).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &note, nil
}

// FindBySale finds the order note of a sale
func (r *GormOrderNoteRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) (*production.OrderNote, error) {
	var note production.OrderNote
	if err := scoped(ctx, r.db, tenantID).Where("sale_id = ?", saleID).First(&note).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &note, nil
}

// Create inserts an order note
func (r *GormOrderNoteRepository) Create(ctx context.Context, note *production.OrderNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

var _ production.OrderNoteRepository = (*GormOrderNoteRepository)(nil)

// GormProcessLogRepository implements ProcessLogRepository using GORM
type GormProcessLogRepository struct {
	db *gorm.DB
}

// NewGormProcessLogRepository creates a new GormProcessLogRepository
func NewGormProcessLogRepository(db *gorm.DB) *GormProcessLogRepository {
	return &GormProcessLogRepository{db: db}
}

// Create appends a log row
func (r *GormProcessLogRepository) Create(ctx context.Context, log *production.ProcessLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByOrder lists the log of an order in completion order
func (r *GormProcessLogRepository) FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]production.ProcessLog, error) {
	var logs []production.ProcessLog
	err := scoped(ctx, r.db, tenantID).
		Where("production_order_id = ?", orderID).
		Order("end_time ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

var _ production.ProcessLogRepository = (*GormProcessLogRepository)(nil)
