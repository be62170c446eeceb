package catalog

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups designs and raw materials
type Category struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(tenantID uuid.UUID, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Category name cannot be empty")
	}
	return &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Size is a garment size. CostPercentageIncrease is the surcharge applied to
// the base cost for this size (e.g. 10.00 means +10%).
type Size struct {
	shared.TenantAggregateRoot
	Name                   string          `gorm:"type:varchar(50);not null"`
	CostPercentageIncrease decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (Size) TableName() string {
	return "sizes"
}

// NewSize creates a new size
func NewSize(tenantID uuid.UUID, name string, increase decimal.Decimal) (*Size, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Size name cannot be empty")
	}
	if increase.IsNegative() {
		return nil, shared.Validationf("Size cost increase cannot be negative")
	}
	return &Size{
		TenantAggregateRoot:    shared.NewTenantAggregateRoot(tenantID),
		Name:                   name,
		CostPercentageIncrease: increase,
	}, nil
}

// Color is a named colour with an optional hex code
type Color struct {
	shared.TenantAggregateRoot
	Name    string `gorm:"type:varchar(50);not null"`
	HexCode string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for GORM
func (Color) TableName() string {
	return "colors"
}

// NewColor creates a new color
func NewColor(tenantID uuid.UUID, name, hex string) (*Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.Validationf("Color name cannot be empty")
	}
	if hex != "" && (len(hex) != 7 || hex[0] != '#') {
		return nil, shared.Validationf("Color hex code must look like #RRGGBB")
	}
	return &Color{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		HexCode:             strings.ToUpper(hex),
	}, nil
}
