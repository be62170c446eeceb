package catalog

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Design is a product blueprint: an ordered list of process steps plus the
// raw materials they consume. CalculatedCost is derived from those recipe
// lines and is only ever written by the cost engine.
type Design struct {
	shared.TenantAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	ProductCode    string          `gorm:"type:varchar(50);index"`
	Description    string          `gorm:"type:text"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index"`
	CalculatedCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Processes []DesignProcess  `gorm:"foreignKey:DesignID;references:ID"`
	Materials []DesignMaterial `gorm:"foreignKey:DesignID;references:ID"`
}

// TableName returns the table name for GORM
func (Design) TableName() string {
	return "designs"
}

// NewDesign creates a design with an empty recipe
func NewDesign(tenantID uuid.UUID, name, productCode, description string, categoryID *uuid.UUID) (*Design, error) {
	d := &Design{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CalculatedCost:      decimal.Zero,
	}
	if err := d.Update(name, productCode, description, categoryID); err != nil {
		return nil, err
	}
	return d, nil
}

// Update replaces the descriptive fields of the design
func (d *Design) Update(name, productCode, description string, categoryID *uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.Validationf("Design name cannot be empty")
	}
	d.Name = name
	d.ProductCode = strings.TrimSpace(productCode)
	d.Description = description
	d.CategoryID = categoryID
	d.Touch()
	return nil
}

// DesignProcess is one ordered step of a design. Cost is the per-design
// override of the process default cost.
type DesignProcess struct {
	shared.BaseEntity
	TenantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	DesignID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_design_process_order,priority:1"`
	ProcessID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Order     int             `gorm:"column:step_order;not null;uniqueIndex:idx_design_process_order,priority:2"`
	Cost      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Process *Process `gorm:"foreignKey:ProcessID;references:ID"`
}

// TableName returns the table name for GORM
func (DesignProcess) TableName() string {
	return "design_processes"
}

// NewDesignProcess creates a recipe step. A nil cost takes the process
// default.
func NewDesignProcess(design *Design, process *Process, order int, cost *decimal.Decimal) (*DesignProcess, error) {
	if design == nil || process == nil {
		return nil, shared.Validationf("Design and process are required")
	}
	if order < 0 {
		return nil, shared.Validationf("Process order cannot be negative")
	}
	c := process.Cost
	if cost != nil {
		if cost.IsNegative() {
			return nil, shared.Validationf("Process cost cannot be negative")
		}
		c = *cost
	}
	return &DesignProcess{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   design.TenantID,
		DesignID:   design.ID,
		ProcessID:  process.ID,
		Order:      order,
		Cost:       c,
	}, nil
}

// ProcessName returns the name of the loaded process, or "" if not loaded
func (dp *DesignProcess) ProcessName() string {
	if dp.Process == nil {
		return ""
	}
	return dp.Process.Name
}

// DesignMaterial is a raw material consumed by a design, with the quantity
// per finished unit and a unit cost snapshot. DesignProcessID optionally tags
// the step that consumes it.
type DesignMaterial struct {
	shared.BaseEntity
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	DesignID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	DesignProcessID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Cost            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID;references:ID"`
}

// TableName returns the table name for GORM
func (DesignMaterial) TableName() string {
	return "design_materials"
}

// NewDesignMaterial creates a material recipe line
func NewDesignMaterial(design *Design, rawMaterialID uuid.UUID, quantity, cost decimal.Decimal, designProcessID *uuid.UUID) (*DesignMaterial, error) {
	if design == nil {
		return nil, shared.Validationf("Design is required")
	}
	if rawMaterialID == uuid.Nil {
		return nil, shared.Validationf("Raw material is required")
	}
	m := &DesignMaterial{
		BaseEntity:      shared.NewBaseEntity(),
		TenantID:        design.TenantID,
		DesignID:        design.ID,
		RawMaterialID:   rawMaterialID,
		DesignProcessID: designProcessID,
	}
	if err := m.Update(quantity, cost, designProcessID); err != nil {
		return nil, err
	}
	return m, nil
}

// Update changes quantity, cost and consuming step of the line
func (m *DesignMaterial) Update(quantity, cost decimal.Decimal, designProcessID *uuid.UUID) error {
	if !quantity.IsPositive() {
		return shared.ErrInvalidQuantity
	}
	if cost.IsNegative() {
		return shared.Validationf("Material cost cannot be negative")
	}
	m.Quantity = quantity
	m.Cost = cost
	m.DesignProcessID = designProcessID
	m.Touch()
	return nil
}

// MaterialName returns the loaded raw material name, or the ID when the
// association was not loaded
func (m *DesignMaterial) MaterialName() string {
	if m.RawMaterial != nil {
		return m.RawMaterial.Name
	}
	return m.RawMaterialID.String()
}

// LineCost returns quantity × cost
func (m *DesignMaterial) LineCost() decimal.Decimal {
	return m.Quantity.Mul(m.Cost)
}

// CalculateCost returns Σ(quantity × cost) over material lines plus Σ cost
// over process lines. Lines that lost their material or process reference
// contribute nothing.
func CalculateCost(materials []DesignMaterial, processes []DesignProcess) decimal.Decimal {
	total := decimal.Zero
	for i := range materials {
		if materials[i].RawMaterialID == uuid.Nil {
			continue
		}
		total = total.Add(materials[i].LineCost())
	}
	for i := range processes {
		if processes[i].ProcessID == uuid.Nil {
			continue
		}
		total = total.Add(processes[i].Cost)
	}
	return shared.RoundMoney(total)
}
