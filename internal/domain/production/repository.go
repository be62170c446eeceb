package production

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductionOrderRepository persists production orders with their items
type ProductionOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductionOrder, error)
	// FindForUpdate loads the order and locks its row until the transaction
	// ends
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*ProductionOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductionOrder, error)
	FindByOrderNote(ctx context.Context, tenantID, orderNoteID uuid.UUID) ([]ProductionOrder, error)
	Create(ctx context.Context, order *ProductionOrder) error
	// UpdateProgress persists status and current process
	UpdateProgress(ctx context.Context, order *ProductionOrder) error
}

// OrderNoteRepository persists order notes
type OrderNoteRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*OrderNote, error)
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) (*OrderNote, error)
	Create(ctx context.Context, note *OrderNote) error
}

// ProcessLogRepository persists process execution records
type ProcessLogRepository interface {
	Create(ctx context.Context, log *ProcessLog) error
	FindByOrder(ctx context.Context, tenantID, orderID uuid.UUID) ([]ProcessLog, error)
}
