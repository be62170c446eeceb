package catalog

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackagingProcessName is the terminal production step. Completing it
// credits finished goods to the factory location.
const PackagingProcessName = "Empaque"

// Process is a production step (cutting, sewing, printing, packaging...)
type Process struct {
	shared.TenantAggregateRoot
	Name                  string          `gorm:"type:varchar(100);not null"`
	Description           string          `gorm:"type:text"`
	Cost                  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsInitialProcess      bool            `gorm:"not null;default:false"`
	AppliesToMedias       bool            `gorm:"not null;default:false"`
	AppliesToIndumentaria bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Process) TableName() string {
	return "processes"
}

// NewProcess creates a new process with its default cost
func NewProcess(tenantID uuid.UUID, name string, cost decimal.Decimal) (*Process, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Process name cannot be empty")
	}
	if cost.IsNegative() {
		return nil, shared.Validationf("Process cost cannot be negative")
	}
	return &Process{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Cost:                cost,
	}, nil
}

// IsPackaging reports whether this is the terminal packaging step
func (p *Process) IsPackaging() bool {
	return IsPackagingStep(p.Name)
}

// IsPackagingStep reports whether a process name designates packaging
func IsPackagingStep(name string) bool {
	return strings.TrimSpace(name) == PackagingProcessName
}
