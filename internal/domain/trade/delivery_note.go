package trade

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryStatus represents the status of a delivery note
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "Pendiente"
	DeliveryShipped   DeliveryStatus = "Enviado"
	DeliveryDelivered DeliveryStatus = "Entregado"
)

// DeliveryNote records the physical dispatch of sold goods from factory
// stock
type DeliveryNote struct {
	shared.TenantAggregateRoot
	SaleID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	Date           time.Time      `gorm:"not null"`
	Status         DeliveryStatus `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	TrackingNumber string         `gorm:"type:varchar(100)"`
	Notes          string         `gorm:"type:text"`

	Items []DeliveryNoteItem `gorm:"foreignKey:DeliveryNoteID;references:ID"`
}

// TableName returns the table name for GORM
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

// DeliveryNoteItem is one dispatched product line
type DeliveryNoteItem struct {
	shared.BaseEntity
	DeliveryNoteID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity       int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryNoteItem) TableName() string {
	return "delivery_note_items"
}

// DeliveryLine is a requested product quantity to dispatch
type DeliveryLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// MergeDeliveryLines sums requested quantities per product, keeping the
// order in which products first appear
func MergeDeliveryLines(lines []DeliveryLine) ([]DeliveryLine, error) {
	if len(lines) == 0 {
		return nil, shared.Validationf("A delivery note needs at least one item")
	}
	index := make(map[uuid.UUID]int, len(lines))
	merged := make([]DeliveryLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == uuid.Nil {
			return nil, shared.Validationf("Every delivery item needs a product")
		}
		if l.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// CheckDeliverable verifies that a requested quantity fits in what was sold
// and not yet delivered
func CheckDeliverable(line DeliveryLine, sold, alreadyDelivered int64) error {
	if sold <= 0 {
		return shared.ErrNotInSale.WithDetail("product_id", line.ProductID.String())
	}
	remaining := sold - alreadyDelivered
	if line.Quantity > remaining {
		return shared.NewDomainErrorf(shared.CodeExceedsRemaining,
			"Requested %d units of product %s but only %d remain to deliver", line.Quantity, line.ProductID, remaining).
			WithDetail("remaining", remaining)
	}
	return nil
}

// NewDeliveryNote creates a pending note for already validated lines
func NewDeliveryNote(tenantID, saleID uuid.UUID, lines []DeliveryLine, trackingNumber, notes string, userID *uuid.UUID) *DeliveryNote {
	note := &DeliveryNote{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		SaleID:              saleID,
		Date:                time.Now(),
		Status:              DeliveryPending,
		TrackingNumber:      trackingNumber,
		Notes:               notes,
	}
	for _, l := range lines {
		note.Items = append(note.Items, DeliveryNoteItem{
			BaseEntity:     shared.NewBaseEntity(),
			DeliveryNoteID: note.ID,
			ProductID:      l.ProductID,
			Quantity:       l.Quantity,
		})
	}
	return note
}
