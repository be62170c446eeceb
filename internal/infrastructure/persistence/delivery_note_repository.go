package persistence

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryNoteRepository implements DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// FindByIDForTenant loads a delivery note with its items
func (r *GormDeliveryNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.DeliveryNote, error) {
	var note trade.DeliveryNote
	if err := scoped(ctx, r.db, tenantID).Preload("Items").Where("id = ?", id).First(&note).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &note, nil
}

// FindBySale lists the delivery notes of a sale, oldest first
func (r *GormDeliveryNoteRepository) FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]trade.DeliveryNote, error) {
	var notes []trade.DeliveryNote
	err := scoped(ctx, r.db, tenantID).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Create inserts the note and its items
func (r *GormDeliveryNoteRepository) Create(ctx context.Context, note *trade.DeliveryNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// DeliveredQuantity sums the units of a product across every delivery note
// of a sale
func (r *GormDeliveryNoteRepository) DeliveredQuantity(ctx context.Context, tenantID, saleID, productID uuid.UUID) (int64, error) {
	var delivered int64
	err := r.db.WithContext(ctx).
		Model(&trade.DeliveryNoteItem{}).
		Select("COALESCE(SUM(delivery_note_items.quantity), 0)").
		Joins("JOIN delivery_notes ON delivery_notes.id = delivery_note_items.delivery_note_id").
		Where("delivery_notes.tenant_id = ? AND delivery_notes.sale_id = ? AND delivery_note_items.product_id = ?", tenantID, saleID, productID).
		Row().Scan(&delivered)
	return delivered, err
}

var _ trade.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)
