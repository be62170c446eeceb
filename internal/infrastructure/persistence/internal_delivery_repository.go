package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInternalDeliveryNoteRepository implements InternalDeliveryNoteRepository using GORM
type GormInternalDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormInternalDeliveryNoteRepository creates a new GormInternalDeliveryNoteRepository
func NewGormInternalDeliveryNoteRepository(db *gorm.DB) *GormInternalDeliveryNoteRepository {
	return &GormInternalDeliveryNoteRepository{db: db}
}

// FindByIDForTenant loads a note with its items
func (r *GormInternalDeliveryNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.InternalDeliveryNote, error) {
	var note inventory.InternalDeliveryNote
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&note).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &note, nil
}

// Create inserts the note and its items
func (r *GormInternalDeliveryNoteRepository) Create(ctx context.Context, note *inventory.InternalDeliveryNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// UpdateStatus persists the lifecycle fields only
func (r *GormInternalDeliveryNoteRepository) UpdateStatus(ctx context.Context, note *inventory.InternalDeliveryNote) error {
	result := scoped(ctx, r.db, note.TenantID).
		Model(&inventory.InternalDeliveryNote{}).
		Where("id = ?", note.ID).
		Updates(map[string]interface{}{
			"status":        note.Status,
			"dispatched_at": note.DispatchedAt,
			"received_at":   note.ReceivedAt,
			"updated_at":    note.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ inventory.InternalDeliveryNoteRepository = (*GormInternalDeliveryNoteRepository)(nil)
