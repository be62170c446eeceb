package inventory

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// InternalDeliveryStatus is the lifecycle of a transfer between locations
type InternalDeliveryStatus string

const (
	InternalDeliveryDraft     InternalDeliveryStatus = "draft"
	InternalDeliveryInTransit InternalDeliveryStatus = "in_transit"
	InternalDeliveryReceived  InternalDeliveryStatus = "received"
	InternalDeliveryCancelled InternalDeliveryStatus = "cancelled"
)

// CanTransitionTo checks if the status can transition to the target status
func (s InternalDeliveryStatus) CanTransitionTo(target InternalDeliveryStatus) bool {
	switch s {
	case InternalDeliveryDraft:
		return target == InternalDeliveryInTransit || target == InternalDeliveryCancelled
	case InternalDeliveryInTransit:
		return target == InternalDeliveryReceived
	}
	return false
}

// InternalDeliveryNote moves finished goods from one location to another
type InternalDeliveryNote struct {
	shared.TenantAggregateRoot
	OriginLocalID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	DestinationLocalID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Status             InternalDeliveryStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	DispatchedAt       *time.Time
	ReceivedAt         *time.Time
	Notes              string `gorm:"type:text"`

	Items []InternalDeliveryNoteItem `gorm:"foreignKey:NoteID;references:ID"`
}

// TableName returns the table name for GORM
func (InternalDeliveryNote) TableName() string {
	return "internal_delivery_notes"
}

// InternalDeliveryNoteItem is one product line of a transfer
type InternalDeliveryNoteItem struct {
	shared.BaseEntity
	NoteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InternalDeliveryNoteItem) TableName() string {
	return "internal_delivery_note_items"
}

// TransferLine is a requested product quantity
type TransferLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// NewInternalDeliveryNote validates and creates a draft transfer note
func NewInternalDeliveryNote(tenantID, originID, destinationID uuid.UUID, lines []TransferLine, notes string, userID *uuid.UUID) (*InternalDeliveryNote, error) {
	if originID == uuid.Nil || destinationID == uuid.Nil {
		return nil, shared.Validationf("Origin and destination are required")
	}
	if originID == destinationID {
		return nil, shared.Validationf("Origin and destination must be different locations")
	}
	if len(lines) == 0 {
		return nil, shared.Validationf("An internal delivery note needs at least one item")
	}
	note := &InternalDeliveryNote{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		OriginLocalID:       originID,
		DestinationLocalID:  destinationID,
		Status:              InternalDeliveryDraft,
		Notes:               notes,
	}
	for _, l := range lines {
		if l.ProductID == uuid.Nil {
			return nil, shared.Validationf("Every item needs a product")
		}
		if l.Quantity <= 0 {
			return nil, shared.ErrInvalidQuantity
		}
		note.Items = append(note.Items, InternalDeliveryNoteItem{
			BaseEntity: shared.NewBaseEntity(),
			NoteID:     note.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
		})
	}
	return note, nil
}

func (n *InternalDeliveryNote) transition(target InternalDeliveryStatus) error {
	if !n.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Cannot move internal delivery note from %s to %s", n.Status, target)
	}
	n.Status = target
	n.Touch()
	return nil
}

// MarkDispatched records that goods left the origin
func (n *InternalDeliveryNote) MarkDispatched(at time.Time) error {
	if err := n.transition(InternalDeliveryInTransit); err != nil {
		return err
	}
	n.DispatchedAt = &at
	return nil
}

// MarkReceived records arrival at the destination
func (n *InternalDeliveryNote) MarkReceived(at time.Time) error {
	if err := n.transition(InternalDeliveryReceived); err != nil {
		return err
	}
	n.ReceivedAt = &at
	return nil
}

// Cancel drops a draft note
func (n *InternalDeliveryNote) Cancel() error {
	return n.transition(InternalDeliveryCancelled)
}
