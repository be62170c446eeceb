package partner

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// Supplier sells raw materials
type Supplier struct {
	shared.TenantAggregateRoot
	Name     string `gorm:"type:varchar(200);not null"`
	CUITCUIL string `gorm:"column:cuit_cuil;type:varchar(20);index"`
	Phone    string `gorm:"type:varchar(50)"`
	Email    string `gorm:"type:varchar(100)"`
	Address  string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a supplier
func NewSupplier(tenantID uuid.UUID, name, cuitCuil string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Supplier name cannot be empty")
	}
	return &Supplier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		CUITCUIL:            strings.TrimSpace(cuitCuil),
	}, nil
}

// Update replaces the supplier's descriptive fields
func (s *Supplier) Update(name, cuitCuil, phone, email, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validationf("Supplier name cannot be empty")
	}
	s.Name = name
	s.CUITCUIL = strings.TrimSpace(cuitCuil)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.TrimSpace(email)
	s.Address = strings.TrimSpace(address)
	s.Touch()
	return nil
}
