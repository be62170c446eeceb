package production

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderNoteStatus represents the status of an order note
type OrderNoteStatus string

const (
	OrderNotePending      OrderNoteStatus = "Pendiente"
	OrderNoteInProduction OrderNoteStatus = "En Produccion"
	OrderNoteCompleted    OrderNoteStatus = "Completada"
	OrderNoteCancelled    OrderNoteStatus = "Cancelada"
)

// OrderNote is the internal production request derived from a sale. A
// sale has at most one.
type OrderNote struct {
	shared.TenantAggregateRoot
	SaleID                uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EstimatedDeliveryDate *time.Time
	ShippingMethod        string          `gorm:"type:varchar(100)"`
	Status                OrderNoteStatus `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	Details               string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderNote) TableName() string {
	return "order_notes"
}

// NewOrderNote creates a pending order note for a sale
func NewOrderNote(tenantID, saleID uuid.UUID, estimated *time.Time, shippingMethod, details string, userID *uuid.UUID) (*OrderNote, error) {
	if saleID == uuid.Nil {
		return nil, shared.Validationf("Order note sale is required")
	}
	return &OrderNote{
		TenantAggregateRoot:   shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		SaleID:                saleID,
		EstimatedDeliveryDate: estimated,
		ShippingMethod:        shippingMethod,
		Status:                OrderNotePending,
		Details:               details,
	}, nil
}

// ProcessLog records the execution of one process step on an order
type ProcessLog struct {
	shared.TenantAggregateRoot
	ProductionOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	DesignProcessID   uuid.UUID `gorm:"type:uuid;not null"`
	ProcessName       string    `gorm:"type:varchar(100);not null"`
	StartTime         *time.Time
	EndTime           time.Time `gorm:"not null"`
	QuantityProcessed int64     `gorm:"not null;default:0"`
	QuantityDefective int64     `gorm:"not null;default:0"`
	FailureDetails    string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProcessLog) TableName() string {
	return "production_process_logs"
}

// NewProcessLog records a completed step
func NewProcessLog(order *ProductionOrder, designProcessID uuid.UUID, processName string, at time.Time, userID *uuid.UUID) *ProcessLog {
	return &ProcessLog{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(order.TenantID, userID),
		ProductionOrderID:   order.ID,
		DesignProcessID:     designProcessID,
		ProcessName:         processName,
		EndTime:             at,
		QuantityProcessed:   order.TotalUnits(),
	}
}
