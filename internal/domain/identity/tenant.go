// Package identity holds the tenant, the isolation root every other
// aggregate is scoped to.
package identity

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
)

// Tenant is the isolation boundary. Every other entity carries its ID.
type Tenant struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant
func NewTenant(name, description string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Tenant name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.Validationf("Tenant name cannot exceed 100 characters")
	}
	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}, nil
}

// Rename changes the tenant display name
func (t *Tenant) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validationf("Tenant name cannot be empty")
	}
	t.Name = name
	t.Touch()
	return nil
}
