package catalog

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// RawMaterial is a consumable input (fabric, thread, ink...). Its stock is
// held in supplier lots, see inventory.MaterialLot.
type RawMaterial struct {
	shared.TenantAggregateRoot
	Name          string     `gorm:"type:varchar(100);not null"`
	CategoryID    *uuid.UUID `gorm:"type:uuid;index"`
	UnitOfMeasure string     `gorm:"type:varchar(20);not null;default:'unidad'"`
}

// TableName returns the table name for GORM
func (RawMaterial) TableName() string {
	return "raw_materials"
}

// NewRawMaterial creates a new raw material
func NewRawMaterial(tenantID uuid.UUID, name, unit string) (*RawMaterial, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Raw material name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		unit = "unidad"
	}
	return &RawMaterial{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		UnitOfMeasure:       unit,
	}, nil
}
