// Package inventory models stock: finished goods per location, raw material
// supplier lots, manual adjustments and transfers between locations.
package inventory

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultFactoryLocalName is the well-known internal warehouse credited by
// completed production and debited by delivery notes.
const DefaultFactoryLocalName = "Fábrica"

// Local is a warehouse or store
type Local struct {
	shared.BaseAggregateRoot
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_locals_tenant_name,priority:1"`
	Name     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_locals_tenant_name,priority:2"`
	Address  string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Local) TableName() string {
	return "locals"
}

// NewLocal creates a new location
func NewLocal(tenantID uuid.UUID, name, address string) (*Local, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Local name cannot be empty")
	}
	return &Local{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          tenantID,
		Name:              name,
		Address:           address,
	}, nil
}
